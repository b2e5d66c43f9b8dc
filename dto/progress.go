package dto

import "time"

// ==================== PROGRESS REQUEST DTOs ====================

// UpdateProgressRequest is the raw upsert surface. Completed and TimeSpent are
// both optional; TimeSpent is an additive delta in seconds, not a total.
type UpdateProgressRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	LessonID  string `json:"lesson_id" validate:"required"`
	Completed *bool  `json:"completed,omitempty"`
	TimeSpent *int   `json:"time_spent,omitempty" validate:"omitempty,min=0"`
}

func (u UpdateProgressRequest) Validate() error {
	return GetValidator().Struct(u)
}

type CompleteLessonRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	LessonID string `json:"lesson_id" validate:"required"`
}

func (c CompleteLessonRequest) Validate() error {
	return GetValidator().Struct(c)
}

type HeartbeatRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	LessonID string `json:"lesson_id" validate:"required"`
	Seconds  int    `json:"seconds" validate:"required,min=1,max=60"`
}

func (h HeartbeatRequest) Validate() error {
	return GetValidator().Struct(h)
}

// DocumentEventRequest is the explicit end-of-document signal from the
// embedded PDF viewer. Completion triggers when CurrentPage == TotalPages.
type DocumentEventRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	LessonID    string `json:"lesson_id" validate:"required"`
	CurrentPage int    `json:"current_page" validate:"required,min=1"`
	TotalPages  int    `json:"total_pages" validate:"required,min=1"`
}

func (d DocumentEventRequest) Validate() error {
	return GetValidator().Struct(d)
}

// ==================== PROGRESS RESPONSE DTOs ====================

type LessonProgressResponse struct {
	CourseID     string     `json:"course_id"`
	LessonID     string     `json:"lesson_id"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastViewedAt time.Time  `json:"last_viewed_at"`
	TimeSpent    int        `json:"time_spent"`
}

type UpdateProgressResponse struct {
	Success bool `json:"success"`
}

type HeartbeatResponse struct {
	Completed bool `json:"completed"`
	TimeSpent int  `json:"time_spent"`
}

type DocumentEventResponse struct {
	Completed      bool `json:"completed"`
	NewlyCompleted bool `json:"newly_completed"`
}

type CourseCompletionResponse struct {
	CourseID string `json:"course_id"`
	Percent  int    `json:"percent"`
}

type CourseProgressSummary struct {
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

type ProgressSummaryResponse struct {
	Courses []CourseProgressSummary `json:"courses"`
}
