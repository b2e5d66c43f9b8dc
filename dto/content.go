package dto

import "time"

// Course DTOs
type CourseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Lessons     int    `json:"lessons"`
	Progress    int    `json:"progress"` // completion percent for the caller
}

type CourseCollectionResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
}

// Lesson DTOs
type LessonResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Order       int    `json:"order"`
	Duration    string `json:"duration"`
	PDFTitle    string `json:"pdf_title"`
	Notes       string `json:"notes"`
	HasDocument bool   `json:"has_document"`
}

// LessonStateResponse is a lesson plus its navigability for the caller.
type LessonStateResponse struct {
	LessonResponse
	Status string `json:"status"` // locked, unlocked, in_progress, completed
}

type CourseDetailResponse struct {
	Course  CourseResponse        `json:"course"`
	Lessons []LessonStateResponse `json:"lessons"`
	Percent int                   `json:"percent"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Sort        int    `json:"sort"`
}

func (c CreateCourseRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreateLessonRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Content     string `json:"content"`
	Order       int    `json:"order" validate:"required,min=1"`
	Duration    string `json:"duration"`
	PDFTitle    string `json:"pdf_title"`
	Notes       string `json:"notes"`
}

func (c CreateLessonRequest) Validate() error {
	return GetValidator().Struct(c)
}

// Resource DTOs
type ResourceResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	URL         string     `json:"url"`
	Summary     string     `json:"summary"`
	PublishedAt *time.Time `json:"published_at"`
}

type ResourceCollectionResponse struct {
	Resources []ResourceResponse `json:"resources"`
	Total     int                `json:"total"`
}

type CreateResourceRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"required,oneof=Article Guide Template Worksheet"`
	URL     string `json:"url" validate:"omitempty,url"`
	Summary string `json:"summary" validate:"max=2000"`
}

func (c CreateResourceRequest) Validate() error {
	return GetValidator().Struct(c)
}

// Video DTOs
type VideoResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	YouTubeID    string `json:"youtube_id"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     string `json:"duration"`
}

type VideoCollectionResponse struct {
	Videos []VideoResponse `json:"videos"`
	Total  int             `json:"total"`
}

type CreateVideoRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	YouTubeID    string `json:"youtube_id" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	Duration     string `json:"duration"`
}

func (c CreateVideoRequest) Validate() error {
	return GetValidator().Struct(c)
}

// Prompt DTOs
type PromptResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type PromptCategoryResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Count       int              `json:"count"`
	Prompts     []PromptResponse `json:"prompts"`
}

type PromptLibraryResponse struct {
	Categories []PromptCategoryResponse `json:"categories"`
}

type CreatePromptCategoryRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func (c CreatePromptCategoryRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreatePromptRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Body       string `json:"body" validate:"required"`
}

func (c CreatePromptRequest) Validate() error {
	return GetValidator().Struct(c)
}
