package services

import (
	"context"
	"fmt"

	"github.com/asadnakade/mini-lms/internal/models"
)

// ModuleRepository defines methods for module data access
type ModuleRepository interface {
	// GetByID retrieves a module by ID
	GetByID(ctx context.Context, id int64) (*models.Module, error)
	// GetWithLessons retrieves a module with its lessons in catalog order
	GetWithLessons(ctx context.Context, id int64) (*models.Module, error)
	// GetByCourseID retrieves a course's modules in catalog order
	GetByCourseID(ctx context.Context, courseID int64) ([]models.Module, error)
	// Create creates a module and returns its ID
	Create(ctx context.Context, courseID int64, title, summary string, orderIndex int) (int64, error)
	// Update updates a module (partial update)
	Update(ctx context.Context, id int64, req *models.UpdateModuleRequest) error
	// Delete deletes a module
	Delete(ctx context.Context, id int64) error
	// Exists checks if a module exists
	Exists(ctx context.Context, id int64) (bool, error)
	// MaxOrderIndex returns the highest order index in a course
	MaxOrderIndex(ctx context.Context, courseID int64) (int, error)
}

// CourseExistenceRepository defines the course checks the module service
// needs
type CourseExistenceRepository interface {
	// Exists checks if a course exists
	Exists(ctx context.Context, id int64) (bool, error)
}

type moduleService struct {
	moduleRepo ModuleRepository
	courseRepo CourseExistenceRepository
}

// NewModuleService creates a new module service
func NewModuleService(moduleRepo ModuleRepository, courseRepo CourseExistenceRepository) *moduleService {
	return &moduleService{
		moduleRepo: moduleRepo,
		courseRepo: courseRepo,
	}
}

// CreateModule creates a module under a course
func (s *moduleService) CreateModule(ctx context.Context, courseID int64, req *models.CreateModuleRequest) (int64, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("course not found")
	}

	if req.Title == "" {
		return 0, fmt.Errorf("module title is required")
	}

	orderIndex := 0
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	} else {
		max, err := s.moduleRepo.MaxOrderIndex(ctx, courseID)
		if err != nil {
			return 0, fmt.Errorf("failed to get max order index: %w", err)
		}
		orderIndex = max + 1
	}

	id, err := s.moduleRepo.Create(ctx, courseID, req.Title, req.Summary, orderIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to create module: %w", err)
	}

	return id, nil
}

// GetModule retrieves a module with its lessons
func (s *moduleService) GetModule(ctx context.Context, id int64) (*models.Module, error) {
	module, err := s.moduleRepo.GetWithLessons(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return module, nil
}

// GetModulesByCourse retrieves a course's modules in catalog order
func (s *moduleService) GetModulesByCourse(ctx context.Context, courseID int64) ([]models.Module, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("course not found")
	}

	modules, err := s.moduleRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}

	return modules, nil
}

// UpdateModule updates a module
func (s *moduleService) UpdateModule(ctx context.Context, id int64, req *models.UpdateModuleRequest) error {
	exists, err := s.moduleRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("module not found")
	}

	if err := s.moduleRepo.Update(ctx, id, req); err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}

	return nil
}

// DeleteModule deletes a module and, through the schema's cascade, its
// lessons
func (s *moduleService) DeleteModule(ctx context.Context, id int64) error {
	exists, err := s.moduleRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("module not found")
	}

	if err := s.moduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	return nil
}
