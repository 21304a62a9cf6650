package models

import "time"

// Module represents a module within a course
type Module struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Lessons    []Lesson  `json:"lessons,omitempty"`
}

// CreateModuleRequest represents a request to create a module
type CreateModuleRequest struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	OrderIndex *int   `json:"orderIndex,omitempty"`
}

// UpdateModuleRequest represents a request to update a module (partial update)
type UpdateModuleRequest struct {
	Title      string `json:"title,omitempty"`
	Summary    string `json:"summary,omitempty"`
	OrderIndex *int   `json:"orderIndex,omitempty"`
}
