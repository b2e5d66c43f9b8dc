package model

import "time"

// Course groups an ordered sequence of lessons.
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	Sort        int       `json:"sort" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Lesson is a single PDF-backed unit within a course. Order is 1-based and
// gapless within its course; the unlock frontier is computed over it.
type Lesson struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CourseID    string    `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Content     string    `json:"content" gorm:"type:text"`
	Order       int       `json:"order" gorm:"not null"` // Lesson order within course
	Duration    string    `json:"duration"`
	PDFKey      string    `json:"pdf_key"` // object key in storage, empty until uploaded
	PDFTitle    string    `json:"pdf_title"`
	Notes       string    `json:"notes" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationship
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// Resource is an entry in the resource library (articles, guides, templates).
type Resource struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Type        string     `json:"type"` // Article, Guide, Template, Worksheet
	URL         string     `json:"url"`
	Summary     string     `json:"summary" gorm:"type:text"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Video is an entry in the video library.
type Video struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	YouTubeID    string    `json:"youtube_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     string    `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PromptCategory groups prompts in the prompt library.
type PromptCategory struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Prompts []Prompt `json:"prompts" gorm:"foreignKey:CategoryID"`
}

type Prompt struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	CategoryID string    `json:"category_id" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"not null"`
	Body       string    `json:"body" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
