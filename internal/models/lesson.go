package models

import "time"

// LessonType represents the type of a lesson
type LessonType string

const (
	LessonTypeText  LessonType = "TEXT"
	LessonTypeVideo LessonType = "VIDEO"
	LessonTypeImage LessonType = "IMAGE"
	LessonTypePdf   LessonType = "PDF"
)

// LessonTypes lists every supported lesson type. Dispatch over lesson types
// must stay in sync with this list (see services.IsContentValidForType).
var LessonTypes = []LessonType{
	LessonTypeText,
	LessonTypeVideo,
	LessonTypeImage,
	LessonTypePdf,
}

// Lesson represents a lesson within a module
type Lesson struct {
	ID         int64      `json:"id"`
	ModuleID   int64      `json:"moduleId"`
	Title      string     `json:"title"`
	Type       LessonType `json:"type"`
	Content    string     `json:"content"`
	OrderIndex int        `json:"orderIndex"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Title      string     `json:"title"`
	Type       LessonType `json:"type"`
	Content    string     `json:"content"`
	OrderIndex *int       `json:"orderIndex,omitempty"`
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Title      string     `json:"title,omitempty"`
	Type       LessonType `json:"type,omitempty"`
	Content    string     `json:"content,omitempty"`
	OrderIndex *int       `json:"orderIndex,omitempty"`
}

// ReorderLessonsRequest represents a request to reorder lessons within a module
type ReorderLessonsRequest struct {
	LessonIDs []int64 `json:"lessonIds"`
}
