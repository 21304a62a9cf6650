package services

import (
	"context"
	"fmt"
	"time"

	"github.com/asadnakade/mini-lms/internal/models"
)

// ProgressCatalogRepository defines the catalog reads needed for progress
// aggregation
type ProgressCatalogRepository interface {
	// GetWithModulesAndLessons retrieves a course with its full module and
	// lesson tree in catalog order
	GetWithModulesAndLessons(ctx context.Context, id int64) (*models.Course, error)
	// CountLessons counts lessons across all modules of a course
	CountLessons(ctx context.Context, id int64) (int, error)
}

// ProgressModuleRepository defines the module reads needed for progress
// aggregation
type ProgressModuleRepository interface {
	// GetWithLessons retrieves a module with its lessons in catalog order
	GetWithLessons(ctx context.Context, id int64) (*models.Module, error)
	// CountLessons counts the lessons of a module
	CountLessons(ctx context.Context, id int64) (int, error)
}

// ProgressLessonRepository defines the lesson reads needed for progress
// updates
type ProgressLessonRepository interface {
	// Exists checks if a lesson exists
	Exists(ctx context.Context, id int64) (bool, error)
}

// LessonProgressRepository defines methods for lesson progress data access
type LessonProgressRepository interface {
	// FindByUserAndLesson retrieves the progress record for a (user, lesson)
	// pair, or (nil, nil) when none exists
	FindByUserAndLesson(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error)
	// FindByUserAndLessonIDs retrieves a user's progress records restricted
	// to the given lesson IDs
	FindByUserAndLessonIDs(ctx context.Context, userID string, lessonIDs []int64) ([]models.LessonProgress, error)
	// Save upserts a progress record
	Save(ctx context.Context, progress *models.LessonProgress) error
	// CountCompletedByModule counts a user's completed lessons in a module
	CountCompletedByModule(ctx context.Context, userID string, moduleID int64) (int, error)
	// CountCompletedByCourse counts a user's completed lessons in a course
	CountCompletedByCourse(ctx context.Context, userID string, courseID int64) (int, error)
}

type progressService struct {
	courseRepo   ProgressCatalogRepository
	moduleRepo   ProgressModuleRepository
	lessonRepo   ProgressLessonRepository
	progressRepo LessonProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(
	courseRepo ProgressCatalogRepository,
	moduleRepo ProgressModuleRepository,
	lessonRepo ProgressLessonRepository,
	progressRepo LessonProgressRepository,
) *progressService {
	return &progressService{
		courseRepo:   courseRepo,
		moduleRepo:   moduleRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
	}
}

// UpdateLessonProgress marks a lesson completed/incomplete or records a
// completion percentage for a user. A provided completed flag takes
// priority over a provided percentage; a percentage of 100 completes the
// lesson, anything below keeps the clamped value with the lesson not
// completed. When neither field is provided the record is persisted
// unchanged, which still refreshes updatedAt.
func (s *progressService) UpdateLessonProgress(ctx context.Context, userID string, lessonID int64, req *models.UpdateLessonProgressRequest) (*models.LessonProgress, error) {
	exists, err := s.lessonRepo.Exists(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("lesson not found")
	}

	progress, err := s.progressRepo.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}
	if progress == nil {
		progress = models.NewLessonProgress(userID, lessonID)
	}

	if req.Completed != nil {
		if *req.Completed {
			progress.MarkCompleted()
		} else {
			progress.MarkIncomplete()
		}
	} else if req.CompletionPercentage != nil {
		progress.ApplyPercentage(*req.CompletionPercentage)
	}

	progress.UpdatedAt = time.Now()

	if err := s.progressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save lesson progress: %w", err)
	}

	return progress, nil
}

// GetModuleProgress computes a user's progress summary for a module
func (s *progressService) GetModuleProgress(ctx context.Context, userID string, moduleID int64) (*models.ProgressResponse, error) {
	module, err := s.moduleRepo.GetWithLessons(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	response := &models.ProgressResponse{
		UserID:      userID,
		EntityID:    moduleID,
		EntityType:  "module",
		EntityTitle: module.Title,
	}

	if len(module.Lessons) == 0 {
		response.LastUpdated = time.Now()
		return response, nil
	}

	lessonIDs := make([]int64, 0, len(module.Lessons))
	for _, lesson := range module.Lessons {
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	records, err := s.progressRepo.FindByUserAndLessonIDs(ctx, userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress records: %w", err)
	}
	recordsByLesson := indexByLessonID(records)

	response.LessonProgresses = make([]models.LessonProgressInfo, 0, len(module.Lessons))
	for _, lesson := range module.Lessons {
		response.LessonProgresses = append(response.LessonProgresses, buildLessonProgressInfo(&lesson, recordsByLesson[lesson.ID]))
	}

	info := summarizeModule(module, recordsByLesson)
	response.TotalLessons = info.TotalLessons
	response.CompletedLessons = info.CompletedLessons
	response.StartedLessons = info.StartedLessons
	response.ProgressPercentage = info.ProgressPercentage
	response.LastUpdated = latestUpdate(records)

	return response, nil
}

// GetCourseProgress computes a user's progress summary for a course.
//
// The course percentage is the unweighted mean of the per-module
// percentages over modules that have at least one lesson, while the
// total/completed/started counts are flat lesson counts across the whole
// course. The asymmetry is deliberate and part of the API contract.
func (s *progressService) GetCourseProgress(ctx context.Context, userID string, courseID int64) (*models.ProgressResponse, error) {
	course, err := s.courseRepo.GetWithModulesAndLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	response := &models.ProgressResponse{
		UserID:      userID,
		EntityID:    courseID,
		EntityType:  "course",
		EntityTitle: course.Title,
	}

	var lessonIDs []int64
	for _, module := range course.Modules {
		for _, lesson := range module.Lessons {
			lessonIDs = append(lessonIDs, lesson.ID)
		}
	}

	if len(lessonIDs) == 0 {
		response.LastUpdated = time.Now()
		return response, nil
	}

	// Single fetch for the whole course; module sub-summaries are computed
	// from this record set
	records, err := s.progressRepo.FindByUserAndLessonIDs(ctx, userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress records: %w", err)
	}
	recordsByLesson := indexByLessonID(records)

	var totalModuleProgress float64
	var modulesWithLessons int
	response.ModuleProgresses = make([]models.ModuleProgressInfo, 0, len(course.Modules))

	// Modules without lessons are excluded from the average, not counted
	// as 0%
	for i := range course.Modules {
		module := &course.Modules[i]
		if len(module.Lessons) == 0 {
			continue
		}
		info := summarizeModule(module, recordsByLesson)
		response.ModuleProgresses = append(response.ModuleProgresses, info)
		totalModuleProgress += info.ProgressPercentage
		modulesWithLessons++
	}

	response.TotalLessons = len(lessonIDs)
	for _, record := range records {
		response.StartedLessons++
		if record.Completed {
			response.CompletedLessons++
		}
	}
	if modulesWithLessons > 0 {
		response.ProgressPercentage = totalModuleProgress / float64(modulesWithLessons)
	}
	response.LastUpdated = latestUpdate(records)

	return response, nil
}

// IsModuleCompleted reports whether a user has completed every lesson of a
// module. A module with no lessons is never completed.
func (s *progressService) IsModuleCompleted(ctx context.Context, userID string, moduleID int64) (bool, error) {
	total, err := s.moduleRepo.CountLessons(ctx, moduleID)
	if err != nil {
		return false, fmt.Errorf("failed to count module lessons: %w", err)
	}

	completed, err := s.progressRepo.CountCompletedByModule(ctx, userID, moduleID)
	if err != nil {
		return false, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return total > 0 && total == completed, nil
}

// IsCourseCompleted reports whether a user has completed every lesson of a
// course. A course with no lessons is never completed.
func (s *progressService) IsCourseCompleted(ctx context.Context, userID string, courseID int64) (bool, error) {
	total, err := s.courseRepo.CountLessons(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to count course lessons: %w", err)
	}

	completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return total > 0 && total == completed, nil
}

// summarizeModule aggregates one module's lessons against the fetched
// record set. Completion is binary at the aggregate level: the percentage
// is completed/total, not an average of per-lesson percentages.
func summarizeModule(module *models.Module, recordsByLesson map[int64]*models.LessonProgress) models.ModuleProgressInfo {
	info := models.ModuleProgressInfo{
		ModuleID:    module.ID,
		ModuleTitle: module.Title,
	}

	info.TotalLessons = len(module.Lessons)
	if info.TotalLessons == 0 {
		return info
	}

	for _, lesson := range module.Lessons {
		record, ok := recordsByLesson[lesson.ID]
		if !ok {
			continue
		}
		info.StartedLessons++
		if record.Completed {
			info.CompletedLessons++
		}
	}

	info.ProgressPercentage = float64(info.CompletedLessons) / float64(info.TotalLessons) * 100
	return info
}

// buildLessonProgressInfo builds the per-lesson detail record; lessons
// without a progress record default to not started
func buildLessonProgressInfo(lesson *models.Lesson, record *models.LessonProgress) models.LessonProgressInfo {
	info := models.LessonProgressInfo{
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		LessonType:  lesson.Type,
	}

	if record != nil {
		startedAt := record.StartedAt
		info.Completed = record.Completed
		info.CompletionPercentage = record.CompletionPercentage
		info.StartedAt = &startedAt
		info.CompletedAt = record.CompletedAt
	}

	return info
}

func indexByLessonID(records []models.LessonProgress) map[int64]*models.LessonProgress {
	byLesson := make(map[int64]*models.LessonProgress, len(records))
	for i := range records {
		byLesson[records[i].LessonID] = &records[i]
	}
	return byLesson
}

// latestUpdate returns the newest updatedAt across the records, or the
// current time when there are none
func latestUpdate(records []models.LessonProgress) time.Time {
	if len(records) == 0 {
		return time.Now()
	}

	latest := records[0].UpdatedAt
	for _, record := range records[1:] {
		if record.UpdatedAt.After(latest) {
			latest = record.UpdatedAt
		}
	}
	return latest
}
