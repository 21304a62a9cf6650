package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asadnakade/mini-lms/internal/models"
)

type lessonProgressRepository struct {
	db *sql.DB
}

// NewLessonProgressRepository creates a new lesson progress repository
func NewLessonProgressRepository(db *sql.DB) *lessonProgressRepository {
	return &lessonProgressRepository{
		db: db,
	}
}

// FindByUserAndLesson retrieves the progress record for a (user, lesson)
// pair. Returns (nil, nil) when no record exists; a missing record is a
// normal state, not an error.
func (r *lessonProgressRepository) FindByUserAndLesson(ctx context.Context, userID string, lessonID int64) (*models.LessonProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, completion_percentage,
			started_at, completed_at, created_at, updated_at
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`

	var progress models.LessonProgress
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LessonID,
		&progress.Completed,
		&progress.CompletionPercentage,
		&progress.StartedAt,
		&progress.CompletedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}

	return &progress, nil
}

// FindByUserAndLessonIDs retrieves a user's progress records restricted to
// the given lesson IDs. An empty ID set yields no records.
func (r *lessonProgressRepository) FindByUserAndLessonIDs(ctx context.Context, userID string, lessonIDs []int64) ([]models.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(lessonIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT id, user_id, lesson_id, completed, completion_percentage,
			started_at, completed_at, created_at, updated_at
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id IN (%s)
	`, placeholders)

	args := make([]any, 0, len(lessonIDs)+1)
	args = append(args, userID)
	for _, id := range lessonIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress records: %w", err)
	}
	defer rows.Close()

	var records []models.LessonProgress
	for rows.Next() {
		var progress models.LessonProgress
		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.LessonID,
			&progress.Completed,
			&progress.CompletionPercentage,
			&progress.StartedAt,
			&progress.CompletedAt,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}
		records = append(records, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lesson progress records: %w", err)
	}

	return records, nil
}

// Save upserts a progress record against the (user_id, lesson_id) unique
// key. Concurrent writers race last-write-wins; the unique constraint
// guarantees at most one row per pair. The record's ID is populated from
// the insert.
func (r *lessonProgressRepository) Save(ctx context.Context, progress *models.LessonProgress) error {
	query := `
		INSERT INTO lesson_progress
			(user_id, lesson_id, completed, completion_percentage, started_at, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			completed = VALUES(completed),
			completion_percentage = VALUES(completion_percentage),
			completed_at = VALUES(completed_at),
			updated_at = VALUES(updated_at)
	`

	result, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.LessonID,
		progress.Completed,
		progress.CompletionPercentage,
		progress.StartedAt,
		progress.CompletedAt,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lesson progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get saved lesson progress id: %w", err)
	}
	progress.ID = id

	return nil
}

// CountCompletedByModule counts a user's completed lessons within a module
func (r *lessonProgressRepository) CountCompletedByModule(ctx context.Context, userID string, moduleID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.user_id = ? AND lp.completed = TRUE AND l.module_id = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, moduleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed module lessons: %w", err)
	}

	return count, nil
}

// CountCompletedByCourse counts a user's completed lessons within a course
func (r *lessonProgressRepository) CountCompletedByCourse(ctx context.Context, userID string, courseID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		JOIN modules m ON m.id = l.module_id
		WHERE lp.user_id = ? AND lp.completed = TRUE AND m.course_id = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed course lessons: %w", err)
	}

	return count, nil
}
