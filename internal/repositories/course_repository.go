package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asadnakade/mini-lms/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetWithModulesAndLessons retrieves a course together with its full
// module and lesson tree, both levels in (order_index, id) order
func (r *courseRepository) GetWithModulesAndLessons(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	moduleQuery := `
		SELECT id, course_id, title, summary, order_index, created_at, updated_at
		FROM modules
		WHERE course_id = ?
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, moduleQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules for course: %w", err)
	}
	defer rows.Close()

	moduleIndex := make(map[int64]int)
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
		moduleIndex[module.ID] = len(course.Modules)
		course.Modules = append(course.Modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modules: %w", err)
	}

	if len(course.Modules) == 0 {
		return course, nil
	}

	lessonQuery := `
		SELECT l.id, l.module_id, l.title, l.type, l.content, l.order_index, l.created_at, l.updated_at
		FROM lessons l
		JOIN modules m ON m.id = l.module_id
		WHERE m.course_id = ?
		ORDER BY l.order_index, l.id
	`

	lessonRows, err := r.db.QueryContext(ctx, lessonQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons for course: %w", err)
	}
	defer lessonRows.Close()

	for lessonRows.Next() {
		var lesson models.Lesson
		err := lessonRows.Scan(
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
		if idx, ok := moduleIndex[lesson.ModuleID]; ok {
			course.Modules[idx].Lessons = append(course.Modules[idx].Lessons, lesson)
		}
	}
	if err := lessonRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return course, nil
}

// GetAll retrieves courses with optional title search and pagination
func (r *courseRepository) GetAll(ctx context.Context, search string, page, count int) ([]models.Course, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM courses
	`

	var args []any
	if search != "" {
		query += " WHERE title LIKE ?"
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// Create creates a new course and returns its ID
func (r *courseRepository) Create(ctx context.Context, req *models.CreateCourseRequest) (int64, error) {
	query := `
		INSERT INTO courses (title, description, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query, req.Title, req.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created course id: %w", err)
	}

	return id, nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, id int64, req *models.UpdateCourseRequest) error {
	var setClauses []string
	var args []any

	if req.Title != "" {
		setClauses = append(setClauses, "title = ?")
		args = append(args, req.Title)
	}
	if req.Description != "" {
		setClauses = append(setClauses, "description = ?")
		args = append(args, req.Description)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := "UPDATE courses SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// Delete deletes a course. Modules and lessons are removed by the
// ON DELETE CASCADE foreign keys.
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM courses WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return nil
}

// Exists checks if a course exists
func (r *courseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	return exists, nil
}

// CountLessons counts lessons across all modules of a course
func (r *courseRepository) CountLessons(ctx context.Context, id int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lessons l
		JOIN modules m ON m.id = l.module_id
		WHERE m.course_id = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count course lessons: %w", err)
	}

	return count, nil
}
