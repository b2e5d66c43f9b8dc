package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apex-leadership/apex_api/model"
)

type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetCourseProgress returns all progress rows for one user and course.
// An empty slice is a valid result; absence of rows means "not started".
func (ds *ProgressRepository) GetCourseProgress(userID, courseID string) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	if err := ds.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLessonProgress returns the row for one (user, course, lesson) triple, or
// (nil, nil) when no row exists. A nil row is not an error.
func (ds *ProgressRepository) GetLessonProgress(userID, courseID, lessonID string) (*model.LessonProgress, error) {
	var row model.LessonProgress
	err := ds.db.Where("user_id = ? AND course_id = ? AND lesson_id = ?",
		userID, courseID, lessonID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertLessonProgress writes the row keyed on (user, course, lesson). The
// caller has already merged the new values against the existing row; this is
// deliberately a read-then-save pair, not an atomic increment (see the model
// doc on the tolerated lost-update race).
func (ds *ProgressRepository) UpsertLessonProgress(row *model.LessonProgress) error {
	var existing model.LessonProgress
	err := ds.db.Where("user_id = ? AND course_id = ? AND lesson_id = ?",
		row.UserID, row.CourseID, row.LessonID).First(&existing).Error

	if err == nil {
		existing.Completed = row.Completed
		existing.CompletedAt = row.CompletedAt
		existing.LastViewedAt = row.LastViewedAt
		existing.TimeSpent = row.TimeSpent
		existing.UpdatedAt = time.Now()
		return ds.db.Save(&existing).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if row.ID == "" {
			id, _ := uuid.NewV7()
			row.ID = id.String()
		}
		row.CreatedAt = time.Now()
		row.UpdatedAt = time.Now()
		return ds.db.Create(row).Error
	}

	return err
}

// CountCompleted returns how many lessons of a course the user has completed.
func (ds *ProgressRepository) CountCompleted(userID, courseID string) (int, error) {
	var count int64
	if err := ds.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
