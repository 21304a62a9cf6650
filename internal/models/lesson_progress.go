package models

import "time"

// LessonProgress represents a user's progress on a single lesson.
// At most one record exists per (userID, lessonID) pair.
type LessonProgress struct {
	ID                   int64      `json:"id"`
	UserID               string     `json:"userId"`
	LessonID             int64      `json:"lessonId"`
	Completed            bool       `json:"completed"`
	CompletionPercentage int        `json:"completionPercentage"`
	StartedAt            time.Time  `json:"startedAt"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// NewLessonProgress creates a fresh, not-yet-started progress record
func NewLessonProgress(userID string, lessonID int64) *LessonProgress {
	now := time.Now()
	return &LessonProgress{
		UserID:               userID,
		LessonID:             lessonID,
		Completed:            false,
		CompletionPercentage: 0,
		StartedAt:            now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// MarkCompleted marks the lesson as completed.
// Keeps the invariant completed == (completionPercentage == 100) and
// completedAt set iff completed.
func (p *LessonProgress) MarkCompleted() {
	now := time.Now()
	p.Completed = true
	p.CompletionPercentage = 100
	p.CompletedAt = &now
}

// MarkIncomplete marks the lesson as not completed and resets the percentage
func (p *LessonProgress) MarkIncomplete() {
	p.Completed = false
	p.CompletionPercentage = 0
	p.CompletedAt = nil
}

// ApplyPercentage applies a percentage update, clamped to [0, 100].
// A clamped value of 100 completes the lesson; anything below keeps the
// supplied value and clears the completed state without resetting to 0.
func (p *LessonProgress) ApplyPercentage(percentage int) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	if percentage == 100 {
		p.MarkCompleted()
		return
	}

	p.Completed = false
	p.CompletedAt = nil
	p.CompletionPercentage = percentage
}

// UpdateLessonProgressRequest represents a request to update lesson progress.
// When Completed is provided it takes priority over CompletionPercentage.
type UpdateLessonProgressRequest struct {
	Completed            *bool `json:"completed,omitempty"`
	CompletionPercentage *int  `json:"completionPercentage,omitempty"`
}
