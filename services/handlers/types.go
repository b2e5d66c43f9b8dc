package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type ProgressServiceInterface interface {
	ListProgress(userID, courseID, lessonID string) ([]dto.LessonProgressResponse, error)
	UpdateLessonProgress(userID, courseID, lessonID string, completed *bool, timeSpentDelta *int) (*model.LessonProgress, error)
	MarkLessonDone(userID, courseID, lessonID string) (bool, error)
	Heartbeat(userID, courseID, lessonID string, seconds int) (*dto.HeartbeatResponse, error)
	HandleDocumentEvent(userID string, req dto.DocumentEventRequest) (*dto.DocumentEventResponse, error)
	GetCourseCompletion(userID, courseID string, totalLessons int) int
	GetSummary(userID string) (*dto.ProgressSummaryResponse, error)
}

type ContentServiceInterface interface {
	ListCourses(userID string) (*dto.CourseCollectionResponse, error)
	GetCourseDetail(userID, courseID, selectedLessonID string) (*dto.CourseDetailResponse, error)
	GetCourseLessons(courseID string) ([]dto.LessonResponse, error)
	GetCourse(courseID string) (*model.Course, error)
	CountLessons(courseID string) (int, error)
	CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetLesson(lessonID string) (*dto.LessonResponse, error)
	CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetResources() (*dto.ResourceCollectionResponse, error)
	CreateResource(req dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	GetVideos() (*dto.VideoCollectionResponse, error)
	CreateVideo(req dto.CreateVideoRequest) (*dto.VideoResponse, error)
	GetPromptLibrary() (*dto.PromptLibraryResponse, error)
	CreatePromptCategory(req dto.CreatePromptCategoryRequest) (*dto.PromptCategoryResponse, error)
	CreatePrompt(req dto.CreatePromptRequest) (*dto.PromptResponse, error)
}

type ChatServiceInterface interface {
	SendToOwner(senderID string, req dto.SendMessageRequest) (*dto.MessageResponse, error)
	SendMessage(senderID, recipientID string, req dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetConversation(userID, withUserID string) (*dto.ConversationResponse, error)
	Subscribe(ctx context.Context, userID string) (*redis.PubSub, error)
}

type MediaServiceInterface interface {
	UploadLessonDocument(lessonID string, fileHeader *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetLessonDocument(lessonID string) (*dto.LessonDocumentResponse, error)
}

// MetricsRecorderInterface receives domain counters from the handlers.
type MetricsRecorderInterface interface {
	RecordLessonCompleted()
	RecordHeartbeat(seconds int)
}
