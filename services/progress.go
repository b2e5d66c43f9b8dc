package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
)

// ProgressService owns the per-lesson progress records and the sequential
// unlock model built on top of them.
type ProgressService struct {
	context.DefaultService
	sqlSvc *PostgresService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== READ SURFACE ====================

// ListProgress is the raw read surface: all rows for the caller and course,
// optionally narrowed to one lesson. Storage failures are returned to the
// handler (which maps them to 500); an empty slice is a valid result.
func (svc *ProgressService) ListProgress(userID, courseID, lessonID string) ([]dto.LessonProgressResponse, error) {
	var rows []model.LessonProgress
	var err error

	if lessonID != "" {
		var row *model.LessonProgress
		row, err = svc.sqlSvc.Progress().GetLessonProgress(userID, courseID, lessonID)
		if err == nil && row != nil {
			rows = []model.LessonProgress{*row}
		}
	} else {
		rows, err = svc.sqlSvc.Progress().GetCourseProgress(userID, courseID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonProgressResponse, len(rows))
	for i, row := range rows {
		responses[i] = mapProgressToResponse(&row)
	}
	return responses, nil
}

// GetProgressMap returns lessonID -> progress for a course. Fetch failures
// degrade to an empty map (logged, never surfaced) so catalog views render a
// zero-progress default instead of blocking.
func (svc *ProgressService) GetProgressMap(userID, courseID string) map[string]dto.LessonProgressResponse {
	rows, err := svc.sqlSvc.Progress().GetCourseProgress(userID, courseID)
	if err != nil {
		log.Printf("Failed to fetch progress for course %s: %v", courseID, err)
		return map[string]dto.LessonProgressResponse{}
	}

	progress := make(map[string]dto.LessonProgressResponse, len(rows))
	for _, row := range rows {
		progress[row.LessonID] = mapProgressToResponse(&row)
	}
	return progress
}

// IsLessonCompleted defaults to false on absence or failure.
func (svc *ProgressService) IsLessonCompleted(userID, courseID, lessonID string) bool {
	row, err := svc.sqlSvc.Progress().GetLessonProgress(userID, courseID, lessonID)
	if err != nil {
		log.Printf("Failed to fetch lesson progress %s/%s: %v", courseID, lessonID, err)
		return false
	}
	return row != nil && row.Completed
}

// GetCourseCompletion returns the caller's completion percent for a course.
func (svc *ProgressService) GetCourseCompletion(userID, courseID string, totalLessons int) int {
	completedCount, err := svc.sqlSvc.Progress().CountCompleted(userID, courseID)
	if err != nil {
		log.Printf("Failed to count completed lessons for course %s: %v", courseID, err)
		return 0
	}
	return completionPercent(completedCount, totalLessons)
}

// GetSummary returns per-course completion for the caller's Progress page.
func (svc *ProgressService) GetSummary(userID string) (*dto.ProgressSummaryResponse, error) {
	courses, err := svc.sqlSvc.Content().GetCourses()
	if err != nil {
		return nil, err
	}

	summary := &dto.ProgressSummaryResponse{
		Courses: make([]dto.CourseProgressSummary, 0, len(courses)),
	}
	for _, course := range courses {
		total, err := svc.sqlSvc.Content().CountLessonsByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		completedCount, err := svc.sqlSvc.Progress().CountCompleted(userID, course.ID)
		if err != nil {
			return nil, err
		}
		summary.Courses = append(summary.Courses, dto.CourseProgressSummary{
			CourseID:  course.ID,
			Title:     course.Title,
			Completed: completedCount,
			Total:     total,
			Percent:   completionPercent(completedCount, total),
		})
	}
	return summary, nil
}

// ==================== WRITE SURFACE ====================

// UpdateLessonProgress is the authoritative upsert: read the existing row,
// merge the change (additive timeSpent, monotonic completed), write it back.
// Failures surface to the caller; there is no automatic retry.
func (svc *ProgressService) UpdateLessonProgress(userID, courseID, lessonID string, completed *bool, timeSpentDelta *int) (*model.LessonProgress, error) {
	existing, err := svc.sqlSvc.Progress().GetLessonProgress(userID, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	row := mergeProgress(existing, userID, courseID, lessonID, completed, timeSpentDelta, time.Now())
	if err := svc.sqlSvc.Progress().UpsertLessonProgress(&row); err != nil {
		return nil, err
	}
	return &row, nil
}

// MarkLessonDone is idempotent: a lesson that is already completed is left
// untouched (no write, completedAt preserved).
func (svc *ProgressService) MarkLessonDone(userID, courseID, lessonID string) (bool, error) {
	existing, err := svc.sqlSvc.Progress().GetLessonProgress(userID, courseID, lessonID)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.Completed {
		return false, nil
	}

	completed := true
	row := mergeProgress(existing, userID, courseID, lessonID, &completed, nil, time.Now())
	if err := svc.sqlSvc.Progress().UpsertLessonProgress(&row); err != nil {
		return false, err
	}
	return true, nil
}

// Heartbeat accumulates time-on-lesson. Once the lesson is completed the
// heartbeat is a strict no-op; the response carries the completed flag so the
// client stops scheduling ticks. Overlapping heartbeat and completion writes
// can lose a tick (read-modify-write without a guard); tolerated by design.
func (svc *ProgressService) Heartbeat(userID, courseID, lessonID string, seconds int) (*dto.HeartbeatResponse, error) {
	existing, err := svc.sqlSvc.Progress().GetLessonProgress(userID, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Completed {
		return &dto.HeartbeatResponse{Completed: true, TimeSpent: existing.TimeSpent}, nil
	}

	row := mergeProgress(existing, userID, courseID, lessonID, nil, &seconds, time.Now())
	if err := svc.sqlSvc.Progress().UpsertLessonProgress(&row); err != nil {
		return nil, err
	}
	return &dto.HeartbeatResponse{Completed: row.Completed, TimeSpent: row.TimeSpent}, nil
}

// HandleDocumentEvent consumes the end-of-document signal from the PDF
// viewer: reaching the last page marks the lesson done.
func (svc *ProgressService) HandleDocumentEvent(userID string, req dto.DocumentEventRequest) (*dto.DocumentEventResponse, error) {
	if req.CurrentPage < req.TotalPages {
		return &dto.DocumentEventResponse{
			Completed: svc.IsLessonCompleted(userID, req.CourseID, req.LessonID),
		}, nil
	}

	newlyCompleted, err := svc.MarkLessonDone(userID, req.CourseID, req.LessonID)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentEventResponse{Completed: true, NewlyCompleted: newlyCompleted}, nil
}

func mapProgressToResponse(row *model.LessonProgress) dto.LessonProgressResponse {
	return dto.LessonProgressResponse{
		CourseID:     row.CourseID,
		LessonID:     row.LessonID,
		Completed:    row.Completed,
		CompletedAt:  row.CompletedAt,
		LastViewedAt: row.LastViewedAt,
		TimeSpent:    row.TimeSpent,
	}
}
