package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/shared"
)

// MediaService manages lesson documents: PDF uploads into MinIO and
// short-lived presigned download URLs for the in-app viewer.
type MediaService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

const (
	maxDocumentSize   = 50 * 1024 * 1024 // 50MB
	documentURLExpiry = 1 * time.Hour
)

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// UploadLessonDocument stores a PDF for a lesson and records the object key
// on the lesson row. Re-uploading replaces the previous document.
func (svc *MediaService) UploadLessonDocument(lessonID string, fileHeader *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	lesson, err := svc.sqlSvc.Content().GetLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, err
	}

	if err := validateDocument(fileHeader); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer file.Close()

	objectKey := fmt.Sprintf("lessons/%s/%s", lessonID, fileHeader.Filename)
	uploadInfo, err := svc.minioSvc.UploadFile(objectKey, file, fileHeader.Size, "application/pdf")
	if err != nil {
		return nil, err
	}

	previousKey := lesson.PDFKey
	lesson.PDFKey = objectKey
	if err := svc.sqlSvc.Content().UpdateLesson(lesson); err != nil {
		return nil, err
	}

	if previousKey != "" && previousKey != objectKey {
		if err := svc.minioSvc.DeleteFile(previousKey); err != nil {
			log.Printf("Failed to delete replaced document %s: %v", previousKey, err)
		}
	}

	url, err := svc.minioSvc.GetFileURL(objectKey, documentURLExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		LessonID:  lessonID,
		ObjectKey: objectKey,
		Size:      uploadInfo.Size,
		URL:       url,
	}, nil
}

// GetLessonDocument returns a presigned URL for the lesson's PDF.
func (svc *MediaService) GetLessonDocument(lessonID string) (*dto.LessonDocumentResponse, error) {
	lesson, err := svc.sqlSvc.Content().GetLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, err
	}

	if lesson.PDFKey == "" {
		return nil, shared.NewNotFoundError(errors.New("no document"), "Lesson has no document")
	}

	url, err := svc.minioSvc.GetFileURL(lesson.PDFKey, documentURLExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.LessonDocumentResponse{
		LessonID: lesson.ID,
		Title:    lesson.PDFTitle,
		URL:      url,
		Notes:    lesson.Notes,
	}, nil
}

func validateDocument(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size <= 0 {
		return shared.NewBadRequestError(errors.New("empty file"), "Uploaded file is empty")
	}
	if fileHeader.Size > maxDocumentSize {
		return shared.NewBadRequestError(errors.New("file too large"), "Document exceeds the 50MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" {
		return shared.NewBadRequestError(errors.New("bad extension"), "Only PDF documents are supported")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/pdf" {
		return shared.NewBadRequestError(errors.New("bad content type"), "Only PDF documents are supported")
	}

	return nil
}
