package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asadnakade/mini-lms/internal/models"
)

type moduleRepository struct {
	db *sql.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *sql.DB) *moduleRepository {
	return &moduleRepository{
		db: db,
	}
}

// GetByID retrieves a module by its ID
func (r *moduleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	query := `
		SELECT id, course_id, title, summary, order_index, created_at, updated_at
		FROM modules
		WHERE id = ?
		LIMIT 1
	`

	var module models.Module
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&module.ID,
		&module.CourseID,
		&module.Title,
		&module.Summary,
		&module.OrderIndex,
		&module.CreatedAt,
		&module.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("module not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}

	return &module, nil
}

// GetWithLessons retrieves a module together with its lessons in
// (order_index, id) order
func (r *moduleRepository) GetWithLessons(ctx context.Context, id int64) (*models.Module, error) {
	module, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, module_id, title, type, content, order_index, created_at, updated_at
		FROM lessons
		WHERE module_id = ?
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons for module: %w", err)
	}
	defer rows.Close()

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
		module.Lessons = append(module.Lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return module, nil
}

// GetByCourseID retrieves all modules of a course in (order_index, id) order
func (r *moduleRepository) GetByCourseID(ctx context.Context, courseID int64) ([]models.Module, error) {
	query := `
		SELECT id, course_id, title, summary, order_index, created_at, updated_at
		FROM modules
		WHERE course_id = ?
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules by course: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var module models.Module
		err := rows.Scan(
			&module.ID,
			&module.CourseID,
			&module.Title,
			&module.Summary,
			&module.OrderIndex,
			&module.CreatedAt,
			&module.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modules: %w", err)
	}

	return modules, nil
}

// Create creates a new module under a course and returns its ID
func (r *moduleRepository) Create(ctx context.Context, courseID int64, title, summary string, orderIndex int) (int64, error) {
	query := `
		INSERT INTO modules (course_id, title, summary, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query, courseID, title, summary, orderIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to create module: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created module id: %w", err)
	}

	return id, nil
}

// Update updates a module (partial update)
func (r *moduleRepository) Update(ctx context.Context, id int64, req *models.UpdateModuleRequest) error {
	var setClauses []string
	var args []any

	if req.Title != "" {
		setClauses = append(setClauses, "title = ?")
		args = append(args, req.Title)
	}
	if req.Summary != "" {
		setClauses = append(setClauses, "summary = ?")
		args = append(args, req.Summary)
	}
	if req.OrderIndex != nil {
		setClauses = append(setClauses, "order_index = ?")
		args = append(args, *req.OrderIndex)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := "UPDATE modules SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}

	return nil
}

// Delete deletes a module. Its lessons are removed by the ON DELETE CASCADE
// foreign key.
func (r *moduleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM modules WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	return nil
}

// Exists checks if a module exists
func (r *moduleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM modules WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check module existence: %w", err)
	}

	return exists, nil
}

// MaxOrderIndex returns the highest order index among a course's modules,
// or 0 when the course has none
func (r *moduleRepository) MaxOrderIndex(ctx context.Context, courseID int64) (int, error) {
	query := `SELECT COALESCE(MAX(order_index), 0) FROM modules WHERE course_id = ?`

	var max int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max module order index: %w", err)
	}

	return max, nil
}

// CountLessons counts the lessons of a module
func (r *moduleRepository) CountLessons(ctx context.Context, id int64) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE module_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count module lessons: %w", err)
	}

	return count, nil
}
