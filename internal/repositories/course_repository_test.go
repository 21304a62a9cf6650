package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asadnakade/mini-lms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCourseRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"}).
					AddRow(1, "Go from Scratch", "Introductory course", now, now)
				mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"})
				mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			expectedError: "course not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
					WithArgs(int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectedError: "failed to get course by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByID(context.Background(), 1)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), result.ID)
				assert.Equal(t, "Go from Scratch", result.Title)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetWithModulesAndLessons(t *testing.T) {
	now := time.Now()

	t.Run("full tree assembled in catalog order", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		courseRows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"}).
			AddRow(1, "Go from Scratch", "Introductory course", now, now)
		mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
			WithArgs(int64(1)).
			WillReturnRows(courseRows)

		moduleRows := sqlmock.NewRows([]string{"id", "course_id", "title", "summary", "order_index", "created_at", "updated_at"}).
			AddRow(10, 1, "Basics", "", 1, now, now).
			AddRow(11, 1, "Concurrency", "", 2, now, now)
		mock.ExpectQuery(`FROM modules\s+WHERE course_id = \?\s+ORDER BY order_index, id`).
			WithArgs(int64(1)).
			WillReturnRows(moduleRows)

		lessonRows := sqlmock.NewRows([]string{"id", "module_id", "title", "type", "content", "order_index", "created_at", "updated_at"}).
			AddRow(100, 10, "Hello", "TEXT", "body", 1, now, now).
			AddRow(101, 11, "Goroutines", "VIDEO", "https://youtube.com/watch?v=x", 1, now, now).
			AddRow(102, 10, "Types", "TEXT", "body", 2, now, now)
		mock.ExpectQuery(`FROM lessons l\s+JOIN modules m ON m.id = l.module_id\s+WHERE m.course_id = \?\s+ORDER BY l.order_index, l.id`).
			WithArgs(int64(1)).
			WillReturnRows(lessonRows)

		result, err := repo.GetWithModulesAndLessons(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, result.Modules, 2)
		assert.Len(t, result.Modules[0].Lessons, 2)
		assert.Len(t, result.Modules[1].Lessons, 1)
		assert.Equal(t, int64(100), result.Modules[0].Lessons[0].ID)
		assert.Equal(t, int64(102), result.Modules[0].Lessons[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("course without modules skips the lesson query", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		courseRows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"}).
			AddRow(1, "Empty", "", now, now)
		mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
			WithArgs(int64(1)).
			WillReturnRows(courseRows)

		moduleRows := sqlmock.NewRows([]string{"id", "course_id", "title", "summary", "order_index", "created_at", "updated_at"})
		mock.ExpectQuery(`FROM modules\s+WHERE course_id = \?\s+ORDER BY order_index, id`).
			WithArgs(int64(1)).
			WillReturnRows(moduleRows)

		result, err := repo.GetWithModulesAndLessons(context.Background(), 1)

		require.NoError(t, err)
		assert.Empty(t, result.Modules)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("course not found", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"})
		mock.ExpectQuery(`FROM courses\s+WHERE id = \?\s+LIMIT 1`).
			WithArgs(int64(999)).
			WillReturnRows(rows)

		result, err := repo.GetWithModulesAndLessons(context.Background(), 999)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "course not found")
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_GetAll(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		search        string
		page          int
		count         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:   "success without search",
			search: "",
			page:   1,
			count:  10,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"}).
					AddRow(1, "Course 1", "", now, now).
					AddRow(2, "Course 2", "", now, now)
				mock.ExpectQuery(`FROM courses\s+ORDER BY id LIMIT \? OFFSET \?`).
					WithArgs(10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:   "success with search and offset",
			search: "Go",
			page:   2,
			count:  5,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "description", "created_at", "updated_at"}).
					AddRow(7, "Go from Scratch", "", now, now)
				mock.ExpectQuery(`FROM courses\s+WHERE title LIKE \? ORDER BY id LIMIT \? OFFSET \?`).
					WithArgs("%Go%", 5, 5).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:   "database error",
			search: "",
			page:   1,
			count:  10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM courses\s+ORDER BY id LIMIT \? OFFSET \?`).
					WithArgs(10, 0).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetAll(context.Background(), tt.search, tt.page, tt.count)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO courses`).
			WithArgs("New course", "Description").
			WillReturnResult(sqlmock.NewResult(3, 1))

		id, err := repo.Create(context.Background(), &models.CreateCourseRequest{
			Title:       "New course",
			Description: "Description",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO courses`).
			WithArgs("New course", "").
			WillReturnError(errors.New("database error"))

		id, err := repo.Create(context.Background(), &models.CreateCourseRequest{Title: "New course"})

		assert.Error(t, err)
		assert.Zero(t, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       *models.UpdateCourseRequest
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name: "update title and description",
			req:  &models.UpdateCourseRequest{Title: "Renamed", Description: "New description"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET title = \?, description = \?, updated_at = NOW\(\) WHERE id = \?`).
					WithArgs("Renamed", "New description", int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "update title only",
			req:  &models.UpdateCourseRequest{Title: "Renamed"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET title = \?, updated_at = NOW\(\) WHERE id = \?`).
					WithArgs("Renamed", int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "empty request is a no-op",
			req:  &models.UpdateCourseRequest{},
			setupMock: func(mock sqlmock.Sqlmock) {
				// No query expected
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), 1, tt.req)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Exists(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		expected bool
	}{
		{name: "exists", exists: true, expected: true},
		{name: "does not exist", exists: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \?\)`).
				WithArgs(int64(1)).
				WillReturnRows(rows)

			exists, err := repo.Exists(context.Background(), 1)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_CountLessons(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(12)
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lessons l\s+JOIN modules m ON m.id = l.module_id\s+WHERE m.course_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	count, err := repo.CountLessons(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
