package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/model"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== COURSE METHODS ====================

func (ds *ContentRepository) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		id, _ := uuid.NewV7()
		course.ID = id.String()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	if err := ds.db.Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (ds *ContentRepository) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ? AND is_active = ?", id, true).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (ds *ContentRepository) GetCourses() ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("is_active = ?", true).
		Order("sort ASC, created_at ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// ==================== LESSON METHODS ====================

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) GetLessonsByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("\"order\" ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *ContentRepository) CountLessonsByCourse(courseID string) (int, error) {
	var count int64
	if err := ds.db.Model(&model.Lesson{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (ds *ContentRepository) UpdateLesson(lesson *model.Lesson) error {
	lesson.UpdatedAt = time.Now()
	if err := ds.db.Save(lesson).Error; err != nil {
		return err
	}
	return nil
}

// ==================== RESOURCE METHODS ====================

func (ds *ContentRepository) CreateResource(resource *model.Resource) (*model.Resource, error) {
	if resource.ID == "" {
		id, _ := uuid.NewV7()
		resource.ID = id.String()
	}
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = time.Now()

	if err := ds.db.Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (ds *ContentRepository) GetResources() ([]model.Resource, error) {
	var resources []model.Resource
	if err := ds.db.Order("published_at DESC NULLS LAST, created_at DESC").
		Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// ==================== VIDEO METHODS ====================

func (ds *ContentRepository) CreateVideo(video *model.Video) (*model.Video, error) {
	if video.ID == "" {
		id, _ := uuid.NewV7()
		video.ID = id.String()
	}
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()

	if err := ds.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

func (ds *ContentRepository) GetVideos() ([]model.Video, error) {
	var videos []model.Video
	if err := ds.db.Order("created_at ASC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// ==================== PROMPT METHODS ====================

func (ds *ContentRepository) CreatePromptCategory(category *model.PromptCategory) (*model.PromptCategory, error) {
	if category.ID == "" {
		id, _ := uuid.NewV7()
		category.ID = id.String()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	if err := ds.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (ds *ContentRepository) GetPromptCategory(id string) (*model.PromptCategory, error) {
	var category model.PromptCategory
	if err := ds.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (ds *ContentRepository) GetPromptCategories() ([]model.PromptCategory, error) {
	var categories []model.PromptCategory
	if err := ds.db.Preload("Prompts").Order("created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (ds *ContentRepository) CreatePrompt(prompt *model.Prompt) (*model.Prompt, error) {
	if prompt.ID == "" {
		id, _ := uuid.NewV7()
		prompt.ID = id.String()
	}
	prompt.CreatedAt = time.Now()
	prompt.UpdatedAt = time.Now()

	if err := ds.db.Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}
