package dto

type MediaUploadResponse struct {
	LessonID  string `json:"lesson_id"`
	ObjectKey string `json:"object_key"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
}

type LessonDocumentResponse struct {
	LessonID string `json:"lesson_id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}
