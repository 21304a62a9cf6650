package services

import (
	"context"
	"errors"
	"testing"

	"github.com/asadnakade/mini-lms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockModuleRepository is a mock implementation of ModuleRepository
type mockModuleRepository struct {
	module        *models.Module
	modules       []models.Module
	exists        bool
	maxOrderIndex int
	createdID     int64
	err           error

	createdOrderIndex int
	deleteCalled      bool
	updateCalled      bool
}

func (m *mockModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.module, nil
}

func (m *mockModuleRepository) GetWithLessons(ctx context.Context, id int64) (*models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.module, nil
}

func (m *mockModuleRepository) GetByCourseID(ctx context.Context, courseID int64) ([]models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.modules, nil
}

func (m *mockModuleRepository) Create(ctx context.Context, courseID int64, title, summary string, orderIndex int) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.createdOrderIndex = orderIndex
	return m.createdID, nil
}

func (m *mockModuleRepository) Update(ctx context.Context, id int64, req *models.UpdateModuleRequest) error {
	m.updateCalled = true
	return m.err
}

func (m *mockModuleRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.err
}

func (m *mockModuleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockModuleRepository) MaxOrderIndex(ctx context.Context, courseID int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.maxOrderIndex, nil
}

// mockCourseExistenceRepository is a mock implementation of CourseExistenceRepository
type mockCourseExistenceRepository struct {
	exists bool
	err    error
}

func (m *mockCourseExistenceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func TestModuleService_CreateModule(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.CreateModuleRequest
		courseRepo    *mockCourseExistenceRepository
		moduleRepo    *mockModuleRepository
		expectedError string
		expectedID    int64
		expectedOrder int
	}{
		{
			name:          "success with explicit order index",
			req:           &models.CreateModuleRequest{Title: "Basics", OrderIndex: intPtr(2)},
			courseRepo:    &mockCourseExistenceRepository{exists: true},
			moduleRepo:    &mockModuleRepository{createdID: 5},
			expectedID:    5,
			expectedOrder: 2,
		},
		{
			name:          "success with appended order index",
			req:           &models.CreateModuleRequest{Title: "Basics"},
			courseRepo:    &mockCourseExistenceRepository{exists: true},
			moduleRepo:    &mockModuleRepository{createdID: 6, maxOrderIndex: 4},
			expectedID:    6,
			expectedOrder: 5,
		},
		{
			name:          "course not found",
			req:           &models.CreateModuleRequest{Title: "Basics"},
			courseRepo:    &mockCourseExistenceRepository{exists: false},
			moduleRepo:    &mockModuleRepository{},
			expectedError: "course not found",
		},
		{
			name:          "missing title",
			req:           &models.CreateModuleRequest{},
			courseRepo:    &mockCourseExistenceRepository{exists: true},
			moduleRepo:    &mockModuleRepository{},
			expectedError: "module title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewModuleService(tt.moduleRepo, tt.courseRepo)

			id, err := svc.CreateModule(context.Background(), 1, tt.req)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedOrder, tt.moduleRepo.createdOrderIndex)
		})
	}
}

func TestModuleService_GetModule(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		module := &models.Module{ID: 1, Title: "Basics", Lessons: []models.Lesson{{ID: 10}}}
		svc := NewModuleService(&mockModuleRepository{module: module}, &mockCourseExistenceRepository{})

		result, err := svc.GetModule(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, module, result)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewModuleService(&mockModuleRepository{err: errors.New("module not found")}, &mockCourseExistenceRepository{})

		result, err := svc.GetModule(context.Background(), 999)

		require.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestModuleService_GetModulesByCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		modules := []models.Module{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
		svc := NewModuleService(&mockModuleRepository{modules: modules}, &mockCourseExistenceRepository{exists: true})

		result, err := svc.GetModulesByCourse(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("course not found", func(t *testing.T) {
		svc := NewModuleService(&mockModuleRepository{}, &mockCourseExistenceRepository{exists: false})

		result, err := svc.GetModulesByCourse(context.Background(), 999)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "course not found")
		assert.Nil(t, result)
	})
}

func TestModuleService_UpdateModule(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		moduleRepo := &mockModuleRepository{exists: true}
		svc := NewModuleService(moduleRepo, &mockCourseExistenceRepository{})

		err := svc.UpdateModule(context.Background(), 1, &models.UpdateModuleRequest{Title: "Renamed"})

		require.NoError(t, err)
		assert.True(t, moduleRepo.updateCalled)
	})

	t.Run("module not found", func(t *testing.T) {
		moduleRepo := &mockModuleRepository{exists: false}
		svc := NewModuleService(moduleRepo, &mockCourseExistenceRepository{})

		err := svc.UpdateModule(context.Background(), 999, &models.UpdateModuleRequest{Title: "Renamed"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "module not found")
		assert.False(t, moduleRepo.updateCalled)
	})
}

func TestModuleService_DeleteModule(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		moduleRepo := &mockModuleRepository{exists: true}
		svc := NewModuleService(moduleRepo, &mockCourseExistenceRepository{})

		err := svc.DeleteModule(context.Background(), 1)

		require.NoError(t, err)
		assert.True(t, moduleRepo.deleteCalled)
	})

	t.Run("module not found", func(t *testing.T) {
		moduleRepo := &mockModuleRepository{exists: false}
		svc := NewModuleService(moduleRepo, &mockCourseExistenceRepository{})

		err := svc.DeleteModule(context.Background(), 999)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "module not found")
		assert.False(t, moduleRepo.deleteCalled)
	})
}
