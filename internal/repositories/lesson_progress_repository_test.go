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

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*lessonProgressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func progressColumns() []string {
	return []string{
		"id", "user_id", "lesson_id", "completed", "completion_percentage",
		"started_at", "completed_at", "created_at", "updated_at",
	}
}

func TestLessonProgressRepository_FindByUserAndLesson(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectNil     bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns()).
					AddRow(1, "user-1", 10, true, 100, now, now, now, now)
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id = \?\s+LIMIT 1`).
					WithArgs("user-1", int64(10)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectNil:     false,
		},
		{
			name: "no record yields nil without error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns())
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id = \?\s+LIMIT 1`).
					WithArgs("user-1", int64(10)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectNil:     true,
		},
		{
			name: "null completed_at scans into nil pointer",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns()).
					AddRow(1, "user-1", 10, false, 55, now, nil, now, now)
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id = \?\s+LIMIT 1`).
					WithArgs("user-1", int64(10)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectNil:     false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id = \?\s+LIMIT 1`).
					WithArgs("user-1", int64(10)).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectNil:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.FindByUserAndLesson(context.Background(), "user-1", 10)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_FindByUserAndLessonIDs(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		lessonIDs     []int64
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:      "success with multiple lesson IDs",
			lessonIDs: []int64{10, 11, 12},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns()).
					AddRow(1, "user-1", 10, true, 100, now, now, now, now).
					AddRow(2, "user-1", 11, false, 40, now, nil, now, now)
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id IN \(\?,\?,\?\)`).
					WithArgs("user-1", int64(10), int64(11), int64(12)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:          "empty lesson IDs skips the query",
			lessonIDs:     []int64{},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:      "database error",
			lessonIDs: []int64{10},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id IN \(\?\)`).
					WithArgs("user-1", int64(10)).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedCount: 0,
		},
		{
			name:      "scan error",
			lessonIDs: []int64{10},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns()).
					AddRow("invalid", "user-1", 10, true, 100, now, now, now, now)
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id IN \(\?\)`).
					WithArgs("user-1", int64(10)).
					WillReturnRows(rows)
			},
			expectedError: true,
			expectedCount: 0,
		},
		{
			name:      "rows iteration error",
			lessonIDs: []int64{10},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(progressColumns()).
					AddRow(1, "user-1", 10, true, 100, now, now, now, now).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(`FROM lesson_progress\s+WHERE user_id = \? AND lesson_id IN \(\?\)`).
					WithArgs("user-1", int64(10)).
					WillReturnRows(rows)
			},
			expectedError: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.FindByUserAndLessonIDs(context.Background(), "user-1", tt.lessonIDs)

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

func TestLessonProgressRepository_Save(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int64
	}{
		{
			name: "insert new record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress`).
					WithArgs("user-1", int64(10), false, 55, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedError: false,
			expectedID:    5,
		},
		{
			name: "upsert existing record keeps its id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress`).
					WithArgs("user-1", int64(10), false, 55, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(3, 2))
			},
			expectedError: false,
			expectedID:    3,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress`).
					WithArgs("user-1", int64(10), false, 55, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedID:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			progress := models.NewLessonProgress("user-1", 10)
			progress.ApplyPercentage(55)

			err := repo.Save(context.Background(), progress)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, progress.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_CountCompletedByModule(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
				mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lesson_progress lp\s+JOIN lessons l ON l.id = lp.lesson_id\s+WHERE lp.user_id = \? AND lp.completed = TRUE AND l.module_id = \?`).
					WithArgs("user-1", int64(1)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 3,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lesson_progress lp\s+JOIN lessons l ON l.id = lp.lesson_id\s+WHERE lp.user_id = \? AND lp.completed = TRUE AND l.module_id = \?`).
					WithArgs("user-1", int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.CountCompletedByModule(context.Background(), "user-1", 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCount, count)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_CountCompletedByCourse(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"count"}).AddRow(12)
				mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lesson_progress lp\s+JOIN lessons l ON l.id = lp.lesson_id\s+JOIN modules m ON m.id = l.module_id\s+WHERE lp.user_id = \? AND lp.completed = TRUE AND m.course_id = \?`).
					WithArgs("user-1", int64(1)).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 12,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lesson_progress lp\s+JOIN lessons l ON l.id = lp.lesson_id\s+JOIN modules m ON m.id = l.module_id\s+WHERE lp.user_id = \? AND lp.completed = TRUE AND m.course_id = \?`).
					WithArgs("user-1", int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.CountCompletedByCourse(context.Background(), "user-1", 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCount, count)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
