package models

import "time"

// ProgressResponse represents aggregated progress for a course or a module.
// It is derived on every query and never persisted.
type ProgressResponse struct {
	UserID             string               `json:"userId"`
	EntityID           int64                `json:"entityId"`
	EntityType         string               `json:"entityType"` // "course" or "module"
	EntityTitle        string               `json:"entityTitle"`
	ProgressPercentage float64              `json:"progressPercentage"`
	TotalLessons       int                  `json:"totalLessons"`
	CompletedLessons   int                  `json:"completedLessons"`
	StartedLessons     int                  `json:"startedLessons"`
	ModuleProgresses   []ModuleProgressInfo `json:"moduleProgresses,omitempty"`
	LessonProgresses   []LessonProgressInfo `json:"lessonProgresses,omitempty"`
	LastUpdated        time.Time            `json:"lastUpdated"`
}

// ModuleProgressInfo represents aggregated progress for a single module
// inside a course-level response
type ModuleProgressInfo struct {
	ModuleID           int64   `json:"moduleId"`
	ModuleTitle        string  `json:"moduleTitle"`
	ProgressPercentage float64 `json:"progressPercentage"`
	TotalLessons       int     `json:"totalLessons"`
	CompletedLessons   int     `json:"completedLessons"`
	StartedLessons     int     `json:"startedLessons"`
}

// LessonProgressInfo represents a single lesson's progress inside a
// module-level response. Lessons without a progress record default to
// not started.
type LessonProgressInfo struct {
	LessonID             int64      `json:"lessonId"`
	LessonTitle          string     `json:"lessonTitle"`
	LessonType           LessonType `json:"lessonType"`
	Completed            bool       `json:"completed"`
	CompletionPercentage int        `json:"completionPercentage"`
	StartedAt            *time.Time `json:"startedAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
}
