package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
	contentSvc  ContentServiceInterface
	metrics     MetricsRecorderInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface, contentSvc ContentServiceInterface, metrics MetricsRecorderInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
		contentSvc:  contentSvc,
		metrics:     metrics,
	}
}

// @Summary Get lesson progress
// @Description List the caller's progress rows for a course, optionally narrowed to one lesson
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId query string true "Course ID"
// @Param lessonId query string false "Lesson ID"
// @Success 200 {object} shared.Response{data=[]dto.LessonProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	courseID := c.Query("courseId")
	if courseID == "" {
		return shared.NewBadRequestError(errors.New("missing courseId"), "courseId is required")
	}

	resp, err := h.progressSvc.ListProgress(userID, courseID, c.Query("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Update lesson progress
// @Description Upsert the caller's progress for a lesson; timeSpent is an additive delta and completed never reverts
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param progressRequest body dto.UpdateProgressRequest true "Progress change"
// @Success 200 {object} shared.Response{data=dto.UpdateProgressResponse}
// @Router /api/v1/progress [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if _, err := h.progressSvc.UpdateLessonProgress(userID, req.CourseID, req.LessonID, req.Completed, req.TimeSpent); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.UpdateProgressResponse{Success: true})
}

// @Summary Complete a lesson
// @Description Mark a lesson completed; repeat calls are no-ops
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param completeRequest body dto.CompleteLessonRequest true "Lesson to complete"
// @Success 200 {object} shared.Response{data=dto.UpdateProgressResponse}
// @Router /api/v1/progress/complete [post]
func (h *ProgressHandler) CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	newlyCompleted, err := h.progressSvc.MarkLessonDone(userID, req.CourseID, req.LessonID)
	if err != nil {
		return err
	}
	if newlyCompleted {
		h.metrics.RecordLessonCompleted()
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.UpdateProgressResponse{Success: true})
}

// @Summary Record a time heartbeat
// @Description Add viewing seconds to a lesson; ignored once the lesson is completed
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param heartbeatRequest body dto.HeartbeatRequest true "Heartbeat tick"
// @Success 200 {object} shared.Response{data=dto.HeartbeatResponse}
// @Router /api/v1/progress/heartbeat [post]
func (h *ProgressHandler) Heartbeat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.Heartbeat(userID, req.CourseID, req.LessonID, req.Seconds)
	if err != nil {
		return err
	}
	if !resp.Completed {
		h.metrics.RecordHeartbeat(req.Seconds)
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Report a document viewer event
// @Description Page position signal from the PDF viewer; the last page completes the lesson
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param documentEvent body dto.DocumentEventRequest true "Viewer position"
// @Success 200 {object} shared.Response{data=dto.DocumentEventResponse}
// @Router /api/v1/progress/document-event [post]
func (h *ProgressHandler) DocumentEvent(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.DocumentEventRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.HandleDocumentEvent(userID, req)
	if err != nil {
		return err
	}
	if resp.NewlyCompleted {
		h.metrics.RecordLessonCompleted()
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get course completion percent
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseCompletionResponse}
// @Router /api/v1/courses/{courseId}/completion [get]
func (h *ProgressHandler) GetCourseCompletion(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	if _, err := h.contentSvc.GetCourse(courseID); err != nil {
		return err
	}

	total, err := h.contentSvc.CountLessons(courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.CourseCompletionResponse{
		CourseID: courseID,
		Percent:  h.progressSvc.GetCourseCompletion(userID, courseID, total),
	})
}

// @Summary Get progress summary
// @Description Per-course completion overview for the caller
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressSummaryResponse}
// @Router /api/v1/progress/summary [get]
func (h *ProgressHandler) GetSummary(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetSummary(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
