package services

import (
	goContext "context"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

// ContentService serves the course catalog, the ordered lesson list with
// per-caller navigability, and the resource/video/prompt libraries.
type ContentService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	redisSvc    *RedisService
	progressSvc *ProgressService
}

const CONTENT_SVC = "content_svc"

const (
	cacheKeyResources = "library:resources"
	cacheKeyVideos    = "library:videos"
	cacheKeyPrompts   = "library:prompts"
	libraryCacheTTL   = 5 * time.Minute
)

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	return nil
}

// ==================== COURSES ====================

// ListCourses returns the active catalog with the caller's completion
// percent per course.
func (svc *ContentService) ListCourses(userID string) (*dto.CourseCollectionResponse, error) {
	courses, err := svc.sqlSvc.Content().GetCourses()
	if err != nil {
		return nil, err
	}

	response := &dto.CourseCollectionResponse{
		Courses: make([]dto.CourseResponse, 0, len(courses)),
		Total:   len(courses),
	}
	for _, course := range courses {
		total, err := svc.sqlSvc.Content().CountLessonsByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		response.Courses = append(response.Courses, dto.CourseResponse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			ImageURL:    course.ImageURL,
			Lessons:     total,
			Progress:    svc.progressSvc.GetCourseCompletion(userID, course.ID, total),
		})
	}
	return response, nil
}

// GetCourseDetail returns the course, its ordered lessons each tagged with
// the caller's navigability status, and the overall completion percent.
// selectedLessonID is optional; when set, that lesson renders in_progress and
// its successor unlocks immediately, without waiting for the completion write.
func (svc *ContentService) GetCourseDetail(userID, courseID, selectedLessonID string) (*dto.CourseDetailResponse, error) {
	course, err := svc.sqlSvc.Content().GetCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Course not found")
		}
		return nil, err
	}

	lessons, err := svc.sqlSvc.Content().GetLessonsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	progress := svc.progressSvc.GetProgressMap(userID, courseID)
	completed := make(map[string]bool, len(progress))
	completedCount := 0
	for lessonID, p := range progress {
		if p.Completed {
			completed[lessonID] = true
			completedCount++
		}
	}

	states := computeLessonStates(lessons, completed, selectedLessonID)

	detail := &dto.CourseDetailResponse{
		Course: dto.CourseResponse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			ImageURL:    course.ImageURL,
			Lessons:     len(lessons),
			Progress:    completionPercent(completedCount, len(lessons)),
		},
		Lessons: make([]dto.LessonStateResponse, len(lessons)),
		Percent: completionPercent(completedCount, len(lessons)),
	}
	for i, lesson := range lessons {
		detail.Lessons[i] = dto.LessonStateResponse{
			LessonResponse: mapLessonToResponse(&lesson),
			Status:         states[i],
		}
	}
	return detail, nil
}

// GetCourseLessons returns the ordered lesson list without per-caller state.
func (svc *ContentService) GetCourseLessons(courseID string) ([]dto.LessonResponse, error) {
	if _, err := svc.sqlSvc.Content().GetCourse(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Course not found")
		}
		return nil, err
	}

	lessons, err := svc.sqlSvc.Content().GetLessonsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i, lesson := range lessons {
		responses[i] = mapLessonToResponse(&lesson)
	}
	return responses, nil
}

func (svc *ContentService) GetCourse(courseID string) (*model.Course, error) {
	course, err := svc.sqlSvc.Content().GetCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Course not found")
		}
		return nil, err
	}
	return course, nil
}

func (svc *ContentService) CountLessons(courseID string) (int, error) {
	return svc.sqlSvc.Content().CountLessonsByCourse(courseID)
}

func (svc *ContentService) CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.sqlSvc.Content().CreateCourse(&model.Course{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Sort:        req.Sort,
		IsActive:    true,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		ImageURL:    course.ImageURL,
	}, nil
}

// ==================== LESSONS ====================

func (svc *ContentService) GetLesson(lessonID string) (*dto.LessonResponse, error) {
	lesson, err := svc.sqlSvc.Content().GetLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, err
	}
	response := mapLessonToResponse(lesson)
	return &response, nil
}

func (svc *ContentService) CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := svc.sqlSvc.Content().GetCourse(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Course not found")
		}
		return nil, err
	}

	lesson, err := svc.sqlSvc.Content().CreateLesson(&model.Lesson{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       req.Order,
		Duration:    req.Duration,
		PDFTitle:    req.PDFTitle,
		Notes:       req.Notes,
		IsActive:    true,
	})
	if err != nil {
		return nil, err
	}
	response := mapLessonToResponse(lesson)
	return &response, nil
}

// ==================== RESOURCE LIBRARY ====================

func (svc *ContentService) GetResources() (*dto.ResourceCollectionResponse, error) {
	var cached dto.ResourceCollectionResponse
	if svc.readCache(cacheKeyResources, &cached) {
		return &cached, nil
	}

	resources, err := svc.sqlSvc.Content().GetResources()
	if err != nil {
		return nil, err
	}

	response := &dto.ResourceCollectionResponse{
		Resources: make([]dto.ResourceResponse, len(resources)),
		Total:     len(resources),
	}
	for i, resource := range resources {
		response.Resources[i] = dto.ResourceResponse{
			ID:          resource.ID,
			Title:       resource.Title,
			Type:        resource.Type,
			URL:         resource.URL,
			Summary:     resource.Summary,
			PublishedAt: resource.PublishedAt,
		}
	}

	svc.writeCache(cacheKeyResources, response)
	return response, nil
}

func (svc *ContentService) CreateResource(req dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := svc.sqlSvc.Content().CreateResource(&model.Resource{
		Title:   req.Title,
		Type:    req.Type,
		URL:     req.URL,
		Summary: req.Summary,
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateCache(cacheKeyResources)
	return &dto.ResourceResponse{
		ID:      resource.ID,
		Title:   resource.Title,
		Type:    resource.Type,
		URL:     resource.URL,
		Summary: resource.Summary,
	}, nil
}

// ==================== VIDEO LIBRARY ====================

func (svc *ContentService) GetVideos() (*dto.VideoCollectionResponse, error) {
	var cached dto.VideoCollectionResponse
	if svc.readCache(cacheKeyVideos, &cached) {
		return &cached, nil
	}

	videos, err := svc.sqlSvc.Content().GetVideos()
	if err != nil {
		return nil, err
	}

	response := &dto.VideoCollectionResponse{
		Videos: make([]dto.VideoResponse, len(videos)),
		Total:  len(videos),
	}
	for i, video := range videos {
		response.Videos[i] = dto.VideoResponse{
			ID:           video.ID,
			Title:        video.Title,
			YouTubeID:    video.YouTubeID,
			ThumbnailURL: video.ThumbnailURL,
			Duration:     video.Duration,
		}
	}

	svc.writeCache(cacheKeyVideos, response)
	return response, nil
}

func (svc *ContentService) CreateVideo(req dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	video, err := svc.sqlSvc.Content().CreateVideo(&model.Video{
		Title:        req.Title,
		YouTubeID:    req.YouTubeID,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateCache(cacheKeyVideos)
	return &dto.VideoResponse{
		ID:           video.ID,
		Title:        video.Title,
		YouTubeID:    video.YouTubeID,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
	}, nil
}

// ==================== PROMPT LIBRARY ====================

func (svc *ContentService) GetPromptLibrary() (*dto.PromptLibraryResponse, error) {
	var cached dto.PromptLibraryResponse
	if svc.readCache(cacheKeyPrompts, &cached) {
		return &cached, nil
	}

	categories, err := svc.sqlSvc.Content().GetPromptCategories()
	if err != nil {
		return nil, err
	}

	response := &dto.PromptLibraryResponse{
		Categories: make([]dto.PromptCategoryResponse, len(categories)),
	}
	for i, category := range categories {
		prompts := make([]dto.PromptResponse, len(category.Prompts))
		for j, prompt := range category.Prompts {
			prompts[j] = dto.PromptResponse{
				ID:    prompt.ID,
				Title: prompt.Title,
				Body:  prompt.Body,
			}
		}
		response.Categories[i] = dto.PromptCategoryResponse{
			ID:          category.ID,
			Title:       category.Title,
			Description: category.Description,
			Count:       len(category.Prompts),
			Prompts:     prompts,
		}
	}

	svc.writeCache(cacheKeyPrompts, response)
	return response, nil
}

func (svc *ContentService) CreatePromptCategory(req dto.CreatePromptCategoryRequest) (*dto.PromptCategoryResponse, error) {
	category, err := svc.sqlSvc.Content().CreatePromptCategory(&model.PromptCategory{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateCache(cacheKeyPrompts)
	return &dto.PromptCategoryResponse{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		Prompts:     []dto.PromptResponse{},
	}, nil
}

func (svc *ContentService) CreatePrompt(req dto.CreatePromptRequest) (*dto.PromptResponse, error) {
	if _, err := svc.sqlSvc.Content().GetPromptCategory(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Prompt category not found")
		}
		return nil, err
	}

	prompt, err := svc.sqlSvc.Content().CreatePrompt(&model.Prompt{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Body:       req.Body,
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateCache(cacheKeyPrompts)
	return &dto.PromptResponse{
		ID:    prompt.ID,
		Title: prompt.Title,
		Body:  prompt.Body,
	}, nil
}

// ==================== CACHE HELPERS ====================

// readCache loads a cached library response; any failure is a miss.
func (svc *ContentService) readCache(key string, out interface{}) bool {
	raw, err := svc.redisSvc.Get(goContext.Background(), key)
	if err != nil || raw == "" {
		return false
	}
	if err := sonic.UnmarshalString(raw, out); err != nil {
		log.Printf("Failed to decode cached %s: %v", key, err)
		return false
	}
	return true
}

func (svc *ContentService) writeCache(key string, value interface{}) {
	raw, err := sonic.MarshalString(value)
	if err != nil {
		return
	}
	if err := svc.redisSvc.Set(goContext.Background(), key, raw, libraryCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

func (svc *ContentService) invalidateCache(key string) {
	if err := svc.redisSvc.Delete(goContext.Background(), key); err != nil {
		log.Printf("Failed to invalidate cache %s: %v", key, err)
	}
}

func mapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:          lesson.ID,
		CourseID:    lesson.CourseID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Content:     lesson.Content,
		Order:       lesson.Order,
		Duration:    lesson.Duration,
		PDFTitle:    lesson.PDFTitle,
		Notes:       lesson.Notes,
		HasDocument: lesson.PDFKey != "",
	}
}
