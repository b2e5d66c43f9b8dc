package services

import (
	"testing"
	"time"

	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no lessons", 0, 0, 0},
		{"negative total", 3, -1, 0},
		{"none done", 0, 5, 0},
		{"all done", 5, 5, 100},
		{"three of four", 3, 4, 75},
		{"one of three rounds", 1, 3, 33},
		{"two of three rounds", 2, 3, 67},
		{"one of eight rounds up", 1, 8, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completionPercent(tt.completed, tt.total); got != tt.want {
				t.Errorf("completionPercent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestMergeProgressNewRow(t *testing.T) {
	now := time.Now()

	row := mergeProgress(nil, "u1", "c1", "l1", nil, intPtr(30), now)

	if row.UserID != "u1" || row.CourseID != "c1" || row.LessonID != "l1" {
		t.Errorf("unexpected keys: %+v", row)
	}
	if row.Completed {
		t.Error("new row should not be completed")
	}
	if row.CompletedAt != nil {
		t.Error("completedAt should be unset")
	}
	if row.TimeSpent != 30 {
		t.Errorf("TimeSpent = %d, want 30", row.TimeSpent)
	}
	if !row.LastViewedAt.Equal(now) {
		t.Error("lastViewedAt should be the write time")
	}
}

func TestMergeProgressTimeSpentIsAdditive(t *testing.T) {
	now := time.Now()
	existing := &model.LessonProgress{ID: "p1", UserID: "u1", CourseID: "c1", LessonID: "l1", TimeSpent: 120}

	row := mergeProgress(existing, "u1", "c1", "l1", nil, intPtr(45), now)

	if row.TimeSpent != 165 {
		t.Errorf("TimeSpent = %d, want 165", row.TimeSpent)
	}
	if row.ID != "p1" {
		t.Errorf("ID = %q, existing row identity must be kept", row.ID)
	}
}

func TestMergeProgressNoDeltaKeepsTimeSpent(t *testing.T) {
	existing := &model.LessonProgress{TimeSpent: 120}

	row := mergeProgress(existing, "u1", "c1", "l1", boolPtr(true), nil, time.Now())

	if row.TimeSpent != 120 {
		t.Errorf("TimeSpent = %d, want 120", row.TimeSpent)
	}
}

func TestMergeProgressCompletedIsMonotonic(t *testing.T) {
	completedAt := time.Now().Add(-time.Hour)
	existing := &model.LessonProgress{Completed: true, CompletedAt: &completedAt, TimeSpent: 60}

	// A heartbeat-style write carries completed=false; it must not re-lock.
	row := mergeProgress(existing, "u1", "c1", "l1", boolPtr(false), intPtr(10), time.Now())

	if !row.Completed {
		t.Error("completed must never revert to false")
	}
	if row.CompletedAt == nil || !row.CompletedAt.Equal(completedAt) {
		t.Error("completedAt must keep its original value")
	}
}

func TestMergeProgressCompletedAtSetOnce(t *testing.T) {
	now := time.Now()

	first := mergeProgress(nil, "u1", "c1", "l1", boolPtr(true), nil, now)
	if first.CompletedAt == nil || !first.CompletedAt.Equal(now) {
		t.Fatal("completedAt should be set on the false to true transition")
	}

	later := now.Add(time.Hour)
	second := mergeProgress(&first, "u1", "c1", "l1", boolPtr(true), nil, later)
	if !second.CompletedAt.Equal(now) {
		t.Error("completing an already completed lesson must not move completedAt")
	}
}

func lessonChain(ids ...string) []model.Lesson {
	lessons := make([]model.Lesson, len(ids))
	for i, id := range ids {
		lessons[i] = model.Lesson{ID: id, Order: i + 1}
	}
	return lessons
}

func TestComputeLessonStates(t *testing.T) {
	tests := []struct {
		name      string
		lessons   []model.Lesson
		completed map[string]bool
		selected  string
		want      []string
	}{
		{
			name:    "fresh course only first unlocked",
			lessons: lessonChain("l1", "l2", "l3"),
			want:    []string{shared.LessonStatusUnlocked, shared.LessonStatusLocked, shared.LessonStatusLocked},
		},
		{
			name:      "first completed unlocks second",
			lessons:   lessonChain("l1", "l2", "l3"),
			completed: map[string]bool{"l1": true},
			want:      []string{shared.LessonStatusCompleted, shared.LessonStatusUnlocked, shared.LessonStatusLocked},
		},
		{
			name:      "gap keeps tail locked",
			lessons:   lessonChain("l1", "l2", "l3", "l4"),
			completed: map[string]bool{"l1": true, "l3": true},
			want: []string{
				shared.LessonStatusCompleted,
				shared.LessonStatusUnlocked,
				shared.LessonStatusCompleted,
				shared.LessonStatusLocked,
			},
		},
		{
			name:     "selection unlocks successor before the write lands",
			lessons:  lessonChain("l1", "l2", "l3"),
			selected: "l1",
			want:     []string{shared.LessonStatusInProgress, shared.LessonStatusUnlocked, shared.LessonStatusLocked},
		},
		{
			name:      "selected completed lesson stays completed",
			lessons:   lessonChain("l1", "l2"),
			completed: map[string]bool{"l1": true},
			selected:  "l1",
			want:      []string{shared.LessonStatusCompleted, shared.LessonStatusUnlocked},
		},
		{
			name:      "all completed",
			lessons:   lessonChain("l1", "l2"),
			completed: map[string]bool{"l1": true, "l2": true},
			want:      []string{shared.LessonStatusCompleted, shared.LessonStatusCompleted},
		},
		{
			name:    "empty course",
			lessons: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeLessonStates(tt.lessons, tt.completed, tt.selected)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d states, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("lesson %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Walks a four-lesson course the way a member does: open a lesson, finish it,
// move on; asserts the unlock frontier and completion percent at each step.
func TestCourseWalkthrough(t *testing.T) {
	lessons := lessonChain("l1", "l2", "l3", "l4")
	completed := map[string]bool{}
	now := time.Now()

	var rows = map[string]model.LessonProgress{}
	complete := func(id string) {
		existing, ok := rows[id]
		var existingPtr *model.LessonProgress
		if ok {
			existingPtr = &existing
		}
		rows[id] = mergeProgress(existingPtr, "u1", "c1", id, boolPtr(true), nil, now)
		completed[id] = true
	}

	assertStates := func(selected string, want []string) {
		t.Helper()
		got := computeLessonStates(lessons, completed, selected)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("lesson %d = %q, want %q (selected=%q)", i, got[i], want[i], selected)
			}
		}
	}

	// Fresh course: the member can only open the first lesson.
	assertStates("", []string{
		shared.LessonStatusUnlocked, shared.LessonStatusLocked,
		shared.LessonStatusLocked, shared.LessonStatusLocked,
	})

	// Opening l1 unlocks l2 optimistically before any write lands.
	assertStates("l1", []string{
		shared.LessonStatusInProgress, shared.LessonStatusUnlocked,
		shared.LessonStatusLocked, shared.LessonStatusLocked,
	})

	complete("l1")
	if pct := completionPercent(len(completed), len(lessons)); pct != 25 {
		t.Fatalf("percent after l1 = %d, want 25", pct)
	}
	assertStates("", []string{
		shared.LessonStatusCompleted, shared.LessonStatusUnlocked,
		shared.LessonStatusLocked, shared.LessonStatusLocked,
	})

	complete("l2")
	complete("l3")
	if pct := completionPercent(len(completed), len(lessons)); pct != 75 {
		t.Fatalf("percent after l3 = %d, want 75", pct)
	}
	assertStates("l4", []string{
		shared.LessonStatusCompleted, shared.LessonStatusCompleted,
		shared.LessonStatusCompleted, shared.LessonStatusInProgress,
	})

	complete("l4")
	if pct := completionPercent(len(completed), len(lessons)); pct != 100 {
		t.Fatalf("percent after l4 = %d, want 100", pct)
	}
}

// The unlock frontier is a prefix property: every unlocked or in_progress
// lesson sits directly after the completed prefix, never deeper.
func TestComputeLessonStatesPrefixProperty(t *testing.T) {
	lessons := lessonChain("l1", "l2", "l3", "l4", "l5")
	completed := map[string]bool{"l1": true, "l2": true}

	states := computeLessonStates(lessons, completed, "")

	sawIncomplete := false
	for i, state := range states {
		if sawIncomplete && state != shared.LessonStatusLocked {
			t.Errorf("lesson %d is %q after an incomplete lesson, want locked", i, state)
		}
		if state != shared.LessonStatusCompleted && state != shared.LessonStatusUnlocked {
			sawIncomplete = true
		}
		if state == shared.LessonStatusUnlocked {
			sawIncomplete = true
		}
	}
}
