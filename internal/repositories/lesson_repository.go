package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asadnakade/mini-lms/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `
		SELECT id, module_id, title, type, content, order_index, created_at, updated_at
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.Title,
		&lesson.Type,
		&lesson.Content,
		&lesson.OrderIndex,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByModuleID retrieves all lessons of a module in (order_index, id)
// order, optionally filtered by lesson type
func (r *lessonRepository) GetByModuleID(ctx context.Context, moduleID int64, lessonType *models.LessonType) ([]models.Lesson, error) {
	query := `
		SELECT id, module_id, title, type, content, order_index, created_at, updated_at
		FROM lessons
		WHERE module_id = ?
	`

	args := []any{moduleID}
	if lessonType != nil {
		query += " AND type = ?"
		args = append(args, *lessonType)
	}
	query += " ORDER BY order_index, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons by module: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.ModuleID,
			&lesson.Title,
			&lesson.Type,
			&lesson.Content,
			&lesson.OrderIndex,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return lessons, nil
}

// Create creates a new lesson under a module and returns its ID
func (r *lessonRepository) Create(ctx context.Context, moduleID int64, title string, lessonType models.LessonType, content string, orderIndex int) (int64, error) {
	query := `
		INSERT INTO lessons (module_id, title, type, content, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query, moduleID, title, lessonType, content, orderIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created lesson id: %w", err)
	}

	return id, nil
}

// Update updates a lesson (partial update)
func (r *lessonRepository) Update(ctx context.Context, id int64, req *models.UpdateLessonRequest) error {
	var setClauses []string
	var args []any

	if req.Title != "" {
		setClauses = append(setClauses, "title = ?")
		args = append(args, req.Title)
	}
	if req.Type != "" {
		setClauses = append(setClauses, "type = ?")
		args = append(args, req.Type)
	}
	if req.Content != "" {
		setClauses = append(setClauses, "content = ?")
		args = append(args, req.Content)
	}
	if req.OrderIndex != nil {
		setClauses = append(setClauses, "order_index = ?")
		args = append(args, *req.OrderIndex)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := "UPDATE lessons SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	return nil
}

// UpdateOrderIndex sets the order index of a single lesson
func (r *lessonRepository) UpdateOrderIndex(ctx context.Context, id int64, orderIndex int) error {
	query := `UPDATE lessons SET order_index = ?, updated_at = NOW() WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, orderIndex, id); err != nil {
		return fmt.Errorf("failed to update lesson order index: %w", err)
	}

	return nil
}

// Delete deletes a lesson. Progress records referencing the lesson are kept
// on purpose; they become unreachable through aggregation.
func (r *lessonRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM lessons WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	return nil
}

// Exists checks if a lesson exists
func (r *lessonRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// ExistsInModule checks if a lesson belongs to the given module
func (r *lessonRepository) ExistsInModule(ctx context.Context, id, moduleID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ? AND module_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id, moduleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lesson membership: %w", err)
	}

	return exists, nil
}

// MaxOrderIndex returns the highest order index among a module's lessons,
// or 0 when the module has none
func (r *lessonRepository) MaxOrderIndex(ctx context.Context, moduleID int64) (int, error) {
	query := `SELECT COALESCE(MAX(order_index), 0) FROM lessons WHERE module_id = ?`

	var max int
	if err := r.db.QueryRowContext(ctx, query, moduleID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max lesson order index: %w", err)
	}

	return max, nil
}
