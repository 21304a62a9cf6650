package services

import (
	"context"
	"fmt"

	"github.com/asadnakade/mini-lms/internal/models"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	// GetByModuleID retrieves a module's lessons in catalog order,
	// optionally filtered by type
	GetByModuleID(ctx context.Context, moduleID int64, lessonType *models.LessonType) ([]models.Lesson, error)
	// Create creates a lesson and returns its ID
	Create(ctx context.Context, moduleID int64, title string, lessonType models.LessonType, content string, orderIndex int) (int64, error)
	// Update updates a lesson (partial update)
	Update(ctx context.Context, id int64, req *models.UpdateLessonRequest) error
	// UpdateOrderIndex sets the order index of a single lesson
	UpdateOrderIndex(ctx context.Context, id int64, orderIndex int) error
	// Delete deletes a lesson
	Delete(ctx context.Context, id int64) error
	// Exists checks if a lesson exists
	Exists(ctx context.Context, id int64) (bool, error)
	// ExistsInModule checks if a lesson belongs to the given module
	ExistsInModule(ctx context.Context, id, moduleID int64) (bool, error)
	// MaxOrderIndex returns the highest order index in a module
	MaxOrderIndex(ctx context.Context, moduleID int64) (int, error)
}

// ModuleExistenceRepository defines the module checks the lesson service
// needs
type ModuleExistenceRepository interface {
	// Exists checks if a module exists
	Exists(ctx context.Context, id int64) (bool, error)
}

type lessonService struct {
	lessonRepo LessonRepository
	moduleRepo ModuleExistenceRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, moduleRepo ModuleExistenceRepository) *lessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		moduleRepo: moduleRepo,
	}
}

// CreateLesson creates a lesson under a module. Content is validated
// against the lesson type before anything is written.
func (s *lessonService) CreateLesson(ctx context.Context, moduleID int64, req *models.CreateLessonRequest) (int64, error) {
	exists, err := s.moduleRepo.Exists(ctx, moduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("module not found")
	}

	if req.Title == "" {
		return 0, fmt.Errorf("lesson title is required")
	}

	if !IsContentValidForType(req.Type, req.Content) {
		return 0, fmt.Errorf("invalid content for lesson type: %s", req.Type)
	}

	orderIndex := 0
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	} else {
		max, err := s.lessonRepo.MaxOrderIndex(ctx, moduleID)
		if err != nil {
			return 0, fmt.Errorf("failed to get max order index: %w", err)
		}
		orderIndex = max + 1
	}

	id, err := s.lessonRepo.Create(ctx, moduleID, req.Title, req.Type, req.Content, orderIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	return id, nil
}

// GetLesson retrieves a lesson by ID
func (s *lessonService) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

// GetLessonsByModule retrieves a module's lessons in catalog order,
// optionally filtered by type
func (s *lessonService) GetLessonsByModule(ctx context.Context, moduleID int64, lessonType *models.LessonType) ([]models.Lesson, error) {
	exists, err := s.moduleRepo.Exists(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("module not found")
	}

	lessons, err := s.lessonRepo.GetByModuleID(ctx, moduleID, lessonType)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}

// UpdateLesson updates a lesson. When type or content changes, the
// resulting pair is validated before the write.
func (s *lessonService) UpdateLesson(ctx context.Context, id int64, req *models.UpdateLessonRequest) error {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get lesson: %w", err)
	}

	if req.Type != "" || req.Content != "" {
		lessonType := lesson.Type
		if req.Type != "" {
			lessonType = req.Type
		}
		content := lesson.Content
		if req.Content != "" {
			content = req.Content
		}
		if !IsContentValidForType(lessonType, content) {
			return fmt.Errorf("invalid content for lesson type: %s", lessonType)
		}
	}

	if err := s.lessonRepo.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	return nil
}

// DeleteLesson deletes a lesson. Progress records for the lesson are not
// touched; they stay reachable only by direct (user, lesson) lookup.
func (s *lessonService) DeleteLesson(ctx context.Context, id int64) error {
	exists, err := s.lessonRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check lesson existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("lesson not found")
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	return nil
}

// ReorderLessons assigns order indexes 1..n to the listed lessons in list
// order. Membership of every lesson in the module is checked before any
// index is written, so a bad list changes nothing.
func (s *lessonService) ReorderLessons(ctx context.Context, moduleID int64, lessonIDs []int64) error {
	exists, err := s.moduleRepo.Exists(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("module not found")
	}

	for _, lessonID := range lessonIDs {
		inModule, err := s.lessonRepo.ExistsInModule(ctx, lessonID, moduleID)
		if err != nil {
			return fmt.Errorf("failed to check lesson membership: %w", err)
		}
		if !inModule {
			return fmt.Errorf("lesson %d does not belong to module %d", lessonID, moduleID)
		}
	}

	for i, lessonID := range lessonIDs {
		if err := s.lessonRepo.UpdateOrderIndex(ctx, lessonID, i+1); err != nil {
			return fmt.Errorf("failed to reorder lesson %d: %w", lessonID, err)
		}
	}

	return nil
}
