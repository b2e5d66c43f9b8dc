package services

import (
	"math"
	"time"

	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

// mergeProgress builds the row to upsert for one (user, course, lesson)
// triple from the existing row (nil when the lesson was never touched) and
// the requested change.
//
// Rules:
//   - completed is monotonic: once true it stays true even if the request
//     carries completed=false (time heartbeats always send false; without
//     this guard a heartbeat after completion would silently re-lock the
//     lesson chain).
//   - completedAt is set exactly once, on the false to true transition.
//   - timeSpent is additive: existing + delta, never replaced wholesale.
//   - lastViewedAt is refreshed on every write.
func mergeProgress(existing *model.LessonProgress, userID, courseID, lessonID string, completed *bool, timeSpentDelta *int, now time.Time) model.LessonProgress {
	row := model.LessonProgress{
		UserID:       userID,
		CourseID:     courseID,
		LessonID:     lessonID,
		LastViewedAt: now,
	}

	if existing != nil {
		row.ID = existing.ID
		row.Completed = existing.Completed
		row.CompletedAt = existing.CompletedAt
		row.TimeSpent = existing.TimeSpent
	}

	if completed != nil && *completed && !row.Completed {
		row.Completed = true
		completedAt := now
		row.CompletedAt = &completedAt
	}

	if timeSpentDelta != nil && *timeSpentDelta > 0 {
		row.TimeSpent += *timeSpentDelta
	}

	return row
}

// completionPercent is round(100 * completed / total); a course with no
// lessons is defined as 0% complete.
func completionPercent(completedCount, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(float64(completedCount) * 100 / float64(totalLessons)))
}

// computeLessonStates derives the navigability status of every lesson in an
// ordered course.
//
// The completion map passed in may be optimistic: selecting a lesson counts
// it as complete for frontier computation before the authoritative write
// lands (selectedID is folded into the map here). The persisted flag is only
// ever changed through the progress writes, never by this computation.
//
// Rules, for lesson index i over the ordered list:
//   - completed(i)                      -> completed
//   - i == selected and not completed   -> in_progress
//   - i == 0, or all j<i completed      -> unlocked
//   - otherwise                         -> locked
func computeLessonStates(lessons []model.Lesson, completed map[string]bool, selectedID string) []string {
	optimistic := make(map[string]bool, len(completed)+1)
	for id, done := range completed {
		if done {
			optimistic[id] = true
		}
	}
	if selectedID != "" {
		optimistic[selectedID] = true
	}

	states := make([]string, len(lessons))
	prefixComplete := true

	for i, lesson := range lessons {
		switch {
		case completed[lesson.ID]:
			states[i] = shared.LessonStatusCompleted
		case lesson.ID == selectedID:
			states[i] = shared.LessonStatusInProgress
		case i == 0 || prefixComplete:
			states[i] = shared.LessonStatusUnlocked
		default:
			states[i] = shared.LessonStatusLocked
		}

		if !optimistic[lesson.ID] {
			prefixComplete = false
		}
	}

	return states
}
