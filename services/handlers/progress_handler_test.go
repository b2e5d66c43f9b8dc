package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

// ==================== STUBS ====================

type stubProgressService struct {
	rows    []dto.LessonProgressResponse
	listErr error

	updated        bool
	newlyCompleted bool
	heartbeat      *dto.HeartbeatResponse
}

func (s *stubProgressService) ListProgress(userID, courseID, lessonID string) ([]dto.LessonProgressResponse, error) {
	return s.rows, s.listErr
}

func (s *stubProgressService) UpdateLessonProgress(userID, courseID, lessonID string, completed *bool, timeSpentDelta *int) (*model.LessonProgress, error) {
	s.updated = true
	return &model.LessonProgress{UserID: userID, CourseID: courseID, LessonID: lessonID}, nil
}

func (s *stubProgressService) MarkLessonDone(userID, courseID, lessonID string) (bool, error) {
	return s.newlyCompleted, nil
}

func (s *stubProgressService) Heartbeat(userID, courseID, lessonID string, seconds int) (*dto.HeartbeatResponse, error) {
	if s.heartbeat != nil {
		return s.heartbeat, nil
	}
	return &dto.HeartbeatResponse{Completed: false, TimeSpent: seconds}, nil
}

func (s *stubProgressService) HandleDocumentEvent(userID string, req dto.DocumentEventRequest) (*dto.DocumentEventResponse, error) {
	done := req.CurrentPage >= req.TotalPages
	return &dto.DocumentEventResponse{Completed: done, NewlyCompleted: done}, nil
}

func (s *stubProgressService) GetCourseCompletion(userID, courseID string, totalLessons int) int {
	return 50
}

func (s *stubProgressService) GetSummary(userID string) (*dto.ProgressSummaryResponse, error) {
	return &dto.ProgressSummaryResponse{Courses: []dto.CourseProgressSummary{}}, nil
}

type stubCourseLookup struct {
	ContentServiceInterface
	courseErr error
	lessons   int
}

func (s *stubCourseLookup) GetCourse(courseID string) (*model.Course, error) {
	if s.courseErr != nil {
		return nil, s.courseErr
	}
	return &model.Course{ID: courseID}, nil
}

func (s *stubCourseLookup) CountLessons(courseID string) (int, error) {
	return s.lessons, nil
}

type stubMetrics struct {
	completions int
	seconds     int
}

func (s *stubMetrics) RecordLessonCompleted()      { s.completions++ }
func (s *stubMetrics) RecordHeartbeat(seconds int) { s.seconds += seconds }

// ==================== HARNESS ====================

// newTestApp mirrors the production error mapping and auth shape: requests
// without a bearer header are rejected before the handler runs.
func newTestApp(progressSvc *stubProgressService, contentSvc ContentServiceInterface, metrics *stubMetrics) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		},
	})

	requireAuth := func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", nil)
		}
		c.Locals(shared.UserID, "user-1")
		c.Locals(shared.UserRole, model.RoleUser)
		return c.Next()
	}

	h := NewProgressHandler(progressSvc, contentSvc, metrics)

	authed := app.Group("/api/v1", requireAuth)
	authed.Get("/progress", h.GetProgress)
	authed.Post("/progress", h.UpdateProgress)
	authed.Post("/progress/complete", h.CompleteLesson)
	authed.Post("/progress/heartbeat", h.Heartbeat)
	authed.Get("/courses/:courseId/completion", h.GetCourseCompletion)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

// ==================== TESTS ====================

func TestGetProgressRequiresCourseID(t *testing.T) {
	app := newTestApp(&stubProgressService{}, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/progress", "", true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetProgressRequiresAuth(t *testing.T) {
	app := newTestApp(&stubProgressService{}, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/progress?courseId=c1", "", false)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUpdateProgressRequiresAuth(t *testing.T) {
	svc := &stubProgressService{}
	app := newTestApp(svc, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "POST", "/api/v1/progress",
		`{"course_id":"c1","lesson_id":"l1"}`, false)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if svc.updated {
		t.Error("rejected request must not reach the service")
	}
}

func TestGetProgressReturnsRows(t *testing.T) {
	svc := &stubProgressService{rows: []dto.LessonProgressResponse{{CourseID: "c1", LessonID: "l1", Completed: true}}}
	app := newTestApp(svc, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/progress?courseId=c1", "", true)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"lesson_id":"l1"`) {
		t.Errorf("body missing progress row: %s", body)
	}
}

func TestGetProgressBackendFailureIs500(t *testing.T) {
	svc := &stubProgressService{listErr: errors.New("connection refused")}
	app := newTestApp(svc, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/progress?courseId=c1", "", true)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestUpdateProgressReturnsSuccess(t *testing.T) {
	svc := &stubProgressService{}
	app := newTestApp(svc, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "POST", "/api/v1/progress",
		`{"course_id":"c1","lesson_id":"l1","time_spent":30}`, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"success":true`) {
		t.Errorf("body missing success flag: %s", body)
	}
	if !svc.updated {
		t.Error("service upsert was not called")
	}
}

func TestUpdateProgressValidatesBody(t *testing.T) {
	app := newTestApp(&stubProgressService{}, &stubCourseLookup{}, &stubMetrics{})

	// lesson_id missing
	resp := doRequest(t, app, "POST", "/api/v1/progress", `{"course_id":"c1"}`, true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCompleteLessonRecordsMetricOnce(t *testing.T) {
	svc := &stubProgressService{newlyCompleted: true}
	metrics := &stubMetrics{}
	app := newTestApp(svc, &stubCourseLookup{}, metrics)

	body := `{"course_id":"c1","lesson_id":"l1"}`
	if resp := doRequest(t, app, "POST", "/api/v1/progress/complete", body, true); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if metrics.completions != 1 {
		t.Errorf("completions = %d, want 1", metrics.completions)
	}

	// Second call is a no-op; the counter must not move.
	svc.newlyCompleted = false
	if resp := doRequest(t, app, "POST", "/api/v1/progress/complete", body, true); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if metrics.completions != 1 {
		t.Errorf("completions = %d after repeat, want 1", metrics.completions)
	}
}

func TestHeartbeatSkipsMetricWhenCompleted(t *testing.T) {
	svc := &stubProgressService{heartbeat: &dto.HeartbeatResponse{Completed: true, TimeSpent: 300}}
	metrics := &stubMetrics{}
	app := newTestApp(svc, &stubCourseLookup{}, metrics)

	resp := doRequest(t, app, "POST", "/api/v1/progress/heartbeat",
		`{"course_id":"c1","lesson_id":"l1","seconds":15}`, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if metrics.seconds != 0 {
		t.Errorf("seconds = %d, completed lesson heartbeat must not count", metrics.seconds)
	}
}

func TestHeartbeatValidatesSeconds(t *testing.T) {
	app := newTestApp(&stubProgressService{}, &stubCourseLookup{}, &stubMetrics{})

	resp := doRequest(t, app, "POST", "/api/v1/progress/heartbeat",
		`{"course_id":"c1","lesson_id":"l1","seconds":600}`, true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCourseCompletionUnknownCourseIs404(t *testing.T) {
	content := &stubCourseLookup{courseErr: shared.NewNotFoundError(errors.New("not found"), "Course not found")}
	app := newTestApp(&stubProgressService{}, content, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/courses/missing/completion", "", true)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCourseCompletionReturnsPercent(t *testing.T) {
	app := newTestApp(&stubProgressService{}, &stubCourseLookup{lessons: 4}, &stubMetrics{})

	resp := doRequest(t, app, "GET", "/api/v1/courses/c1/completion", "", true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"percent":50`) {
		t.Errorf("body missing percent: %s", body)
	}
}
