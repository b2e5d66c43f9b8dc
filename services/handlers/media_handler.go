package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/apex-leadership/apex_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload a lesson document
// @Description Attach a PDF to a lesson; a later upload replaces the current document
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Owner Bearer Token" default(Bearer <owner_token>)
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "PDF document"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/document [post]
func (h *MediaHandler) UploadDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file upload")
	}

	resp, err := h.mediaSvc.UploadLessonDocument(c.Params("lessonId"), fileHeader)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Document uploaded successfully", resp)
}

// @Summary Get a lesson document link
// @Description Presigned, short-lived download URL for the lesson's PDF
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonDocumentResponse}
// @Router /api/v1/lessons/{lessonId}/document [get]
func (h *MediaHandler) GetDocument(c *fiber.Ctx) error {
	resp, err := h.mediaSvc.GetLessonDocument(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
