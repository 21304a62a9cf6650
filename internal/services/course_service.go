package services

import (
	"context"
	"fmt"

	"github.com/asadnakade/mini-lms/internal/models"
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	// GetWithModulesAndLessons retrieves a course with its full tree
	GetWithModulesAndLessons(ctx context.Context, id int64) (*models.Course, error)
	// GetAll retrieves courses with optional title search and pagination
	GetAll(ctx context.Context, search string, page, count int) ([]models.Course, error)
	// Create creates a course and returns its ID
	Create(ctx context.Context, req *models.CreateCourseRequest) (int64, error)
	// Update updates a course (partial update)
	Update(ctx context.Context, id int64, req *models.UpdateCourseRequest) error
	// Delete deletes a course
	Delete(ctx context.Context, id int64) error
	// Exists checks if a course exists
	Exists(ctx context.Context, id int64) (bool, error)
}

type courseService struct {
	courseRepo CourseRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository) *courseService {
	return &courseService{
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (int64, error) {
	if req.Title == "" {
		return 0, fmt.Errorf("course title is required")
	}

	id, err := s.courseRepo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create course: %w", err)
	}

	return id, nil
}

// GetCourse retrieves a course with its full module and lesson tree
func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetWithModulesAndLessons(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// GetCoursesList retrieves courses with optional title search and pagination
func (s *courseService) GetCoursesList(ctx context.Context, search string, page, count int) ([]models.Course, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	courses, err := s.courseRepo.GetAll(ctx, search, page, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse updates a course
func (s *courseService) UpdateCourse(ctx context.Context, id int64, req *models.UpdateCourseRequest) error {
	exists, err := s.courseRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("course not found")
	}

	if err := s.courseRepo.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// DeleteCourse deletes a course and, through the schema's cascades, its
// modules and lessons
func (s *courseService) DeleteCourse(ctx context.Context, id int64) error {
	exists, err := s.courseRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("course not found")
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}
