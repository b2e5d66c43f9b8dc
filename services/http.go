package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/apex-leadership/apex_api/middleware"
	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/services/handlers"
	"github.com/apex-leadership/apex_api/shared"
)

type HttpService struct {
	appContext.DefaultService

	authSvc       *AuthService
	progressSvc   *ProgressService
	contentSvc    *ContentService
	chatSvc       *ChatService
	mediaSvc      *MediaService
	redisSvc      *RedisService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"
const DEFAULT_HTTP_PORT = 8000

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = DEFAULT_HTTP_PORT
	}
	svc.port = port

	return svc.DefaultService.Configure(ctx)
}

// Start wires the handlers and blocks on the listener; this service runs last.
func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.chatSvc = svc.Service(CHAT_SVC).(*ChatService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		AppName:      "apex_api",
		BodyLimit:    60 * 1024 * 1024,
		ErrorHandler: svc.errorHandler,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Printf("HTTP server starting on port %d", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc, svc.contentSvc, svc.monitoringSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	chatHandler := handlers.NewChatHandler(svc.chatSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	svc.app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	api := svc.app.Group("/api/v1")

	// Public surface
	api.Post("/register", middleware.RateLimit(svc.redisSvc, "register", 10, time.Hour), authHandler.Register)
	api.Post("/login", middleware.RateLimit(svc.redisSvc, "login", 20, 15*time.Minute), authHandler.Login)
	api.Get("/resources", contentHandler.GetResources)
	api.Get("/videos", contentHandler.GetVideos)
	api.Get("/prompts", contentHandler.GetPromptLibrary)

	// Member surface
	authed := api.Group("", svc.authSvc.RequiredAuth())
	authed.Get("/profile", authHandler.GetProfile)
	authed.Put("/profile", authHandler.UpdateProfile)

	authed.Get("/courses", contentHandler.GetCourses)
	authed.Get("/courses/:courseId/completion", progressHandler.GetCourseCompletion)
	authed.Get("/courses/:courseId/lessons", contentHandler.GetCourseLessons)
	authed.Get("/courses/:courseId", contentHandler.GetCourseDetail)
	authed.Get("/lessons/:lessonId/document", mediaHandler.GetDocument)
	authed.Get("/lessons/:lessonId", contentHandler.GetLesson)

	authed.Get("/progress", progressHandler.GetProgress)
	authed.Post("/progress", progressHandler.UpdateProgress)
	authed.Post("/progress/complete", progressHandler.CompleteLesson)
	authed.Post("/progress/heartbeat", middleware.RateLimit(svc.redisSvc, "heartbeat", 30, time.Minute), progressHandler.Heartbeat)
	authed.Post("/progress/document-event", progressHandler.DocumentEvent)
	authed.Get("/progress/summary", progressHandler.GetSummary)

	authed.Get("/chat/messages", chatHandler.GetConversation)
	authed.Post("/chat/messages", middleware.RateLimit(svc.redisSvc, "chat_send", 20, time.Minute), chatHandler.SendMessage)
	authed.Get("/chat/stream", chatHandler.Stream)

	// Owner surface
	admin := authed.Group("/admin", svc.authSvc.RequireRole(model.RoleOwner))
	admin.Post("/courses", contentHandler.CreateCourse)
	admin.Post("/lessons", contentHandler.CreateLesson)
	admin.Post("/lessons/:lessonId/document", mediaHandler.UploadDocument)
	admin.Post("/resources", contentHandler.CreateResource)
	admin.Post("/videos", contentHandler.CreateVideo)
	admin.Post("/prompt-categories", contentHandler.CreatePromptCategory)
	admin.Post("/prompts", contentHandler.CreatePrompt)
}

// errorHandler maps service-layer errors onto the shared response envelope.
func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return shared.ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}

func corsOrigins() string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return origins
	}
	return "*"
}
