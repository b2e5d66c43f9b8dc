package model

import "time"

// LessonProgress is one row per (user, course, lesson) triple, upserted on
// that key. Completed is monotonic false to true; CompletedAt is set once on
// that transition. TimeSpent grows only by additive merge with the stored
// value, never blind replacement. The read-modify-write accumulation has no
// transactional guard; overlapping writers can lose a tick, which is
// tolerated because time spent is advisory and never drives unlocking.
type LessonProgress struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_lesson"`
	CourseID     string     `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_lesson"`
	LessonID     string     `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_course_lesson"`
	Completed    bool       `json:"completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastViewedAt time.Time  `json:"last_viewed_at"`
	TimeSpent    int        `json:"time_spent" gorm:"default:0"` // in seconds
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
