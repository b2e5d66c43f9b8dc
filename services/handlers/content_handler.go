package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// ==================== CATALOG ====================

// @Summary List courses
// @Description Active course catalog with the caller's completion percent per course
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.CourseCollectionResponse}
// @Router /api/v1/courses [get]
func (h *ContentHandler) GetCourses(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.contentSvc.ListCourses(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get course detail
// @Description Course with its ordered lessons, each tagged locked/unlocked/in_progress/completed for the caller
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Param selectedLessonId query string false "Lesson the caller has open"
// @Success 200 {object} shared.Response{data=dto.CourseDetailResponse}
// @Router /api/v1/courses/{courseId} [get]
func (h *ContentHandler) GetCourseDetail(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.contentSvc.GetCourseDetail(userID, c.Params("courseId"), c.Query("selectedLessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List course lessons
// @Description Ordered lesson list for a course, without per-caller unlock state
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=[]dto.LessonResponse}
// @Router /api/v1/courses/{courseId}/lessons [get]
func (h *ContentHandler) GetCourseLessons(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetCourseLessons(c.Params("courseId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get lesson content
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// ==================== LIBRARIES ====================

// @Summary List resources
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ResourceCollectionResponse}
// @Router /api/v1/resources [get]
func (h *ContentHandler) GetResources(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetResources()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List videos
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=dto.VideoCollectionResponse}
// @Router /api/v1/videos [get]
func (h *ContentHandler) GetVideos(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetVideos()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get prompt library
// @Description Prompt categories with their prompts
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PromptLibraryResponse}
// @Router /api/v1/prompts [get]
func (h *ContentHandler) GetPromptLibrary(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetPromptLibrary()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// ==================== ADMIN ====================

// @Summary Create course
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param courseRequest body dto.CreateCourseRequest true "Course"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/admin/courses [post]
func (h *ContentHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateCourse(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Course created successfully", resp)
}

// @Summary Create lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param lessonRequest body dto.CreateLessonRequest true "Lesson"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateLesson(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Lesson created successfully", resp)
}

// @Summary Create resource
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param resourceRequest body dto.CreateResourceRequest true "Resource"
// @Success 201 {object} shared.Response{data=dto.ResourceResponse}
// @Router /api/v1/admin/resources [post]
func (h *ContentHandler) CreateResource(c *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateResource(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Resource created successfully", resp)
}

// @Summary Create video
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param videoRequest body dto.CreateVideoRequest true "Video"
// @Success 201 {object} shared.Response{data=dto.VideoResponse}
// @Router /api/v1/admin/videos [post]
func (h *ContentHandler) CreateVideo(c *fiber.Ctx) error {
	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateVideo(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Video created successfully", resp)
}

// @Summary Create prompt category
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param categoryRequest body dto.CreatePromptCategoryRequest true "Prompt category"
// @Success 201 {object} shared.Response{data=dto.PromptCategoryResponse}
// @Router /api/v1/admin/prompt-categories [post]
func (h *ContentHandler) CreatePromptCategory(c *fiber.Ctx) error {
	var req dto.CreatePromptCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreatePromptCategory(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Prompt category created successfully", resp)
}

// @Summary Create prompt
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param promptRequest body dto.CreatePromptRequest true "Prompt"
// @Success 201 {object} shared.Response{data=dto.PromptResponse}
// @Router /api/v1/admin/prompts [post]
func (h *ContentHandler) CreatePrompt(c *fiber.Ctx) error {
	var req dto.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreatePrompt(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Prompt created successfully", resp)
}
