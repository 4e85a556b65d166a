package models

import (
	"slices"
	"testing"
)

func TestToggleFlipsCompletion(t *testing.T) {
	log := NewDailyLog("u1", "2026-08-30")

	if got := log.Toggle("h1"); !got {
		t.Errorf("Toggle() first call = %v, want true", got)
	}
	if !log.Completed("h1") {
		t.Error("Completed(h1) = false after toggling on")
	}

	if got := log.Toggle("h1"); got {
		t.Errorf("Toggle() second call = %v, want false", got)
	}
	if log.Completed("h1") {
		t.Error("Completed(h1) = true after toggling off")
	}
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	log := NewDailyLog("u1", "2026-08-30")
	log.CompletedHabitIDs = []string{"h1", "h2"}
	original := slices.Clone(log.CompletedHabitIDs)

	log.Toggle("h3")
	log.Toggle("h3")

	slices.Sort(log.CompletedHabitIDs)
	slices.Sort(original)
	if !slices.Equal(log.CompletedHabitIDs, original) {
		t.Errorf("completed set after double toggle = %v, want %v", log.CompletedHabitIDs, original)
	}
}

func TestToggleNoDuplicates(t *testing.T) {
	log := NewDailyLog("u1", "2026-08-30")
	log.Toggle("h1")
	log.Toggle("h2")
	log.Toggle("h1")
	log.Toggle("h1")

	count := 0
	for _, id := range log.CompletedHabitIDs {
		if id == "h1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("h1 appears %d times, want 1", count)
	}
}

func TestAllCompleted(t *testing.T) {
	habits := []Habit{{ID: "a"}, {ID: "b"}}

	tests := []struct {
		name      string
		completed []string
		habits    []Habit
		want      bool
	}{
		{
			name:      "all done",
			completed: []string{"b", "a"},
			habits:    habits,
			want:      true,
		},
		{
			name:      "one missing",
			completed: []string{"a"},
			habits:    habits,
			want:      false,
		},
		{
			name:      "empty log",
			completed: nil,
			habits:    habits,
			want:      false,
		},
		{
			name:      "no habits",
			completed: []string{"a"},
			habits:    nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := DailyLog{CompletedHabitIDs: tt.completed}
			if got := log.AllCompleted(tt.habits); got != tt.want {
				t.Errorf("AllCompleted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogID(t *testing.T) {
	if got := LogID("u1", "2026-08-30"); got != "u1_2026-08-30" {
		t.Errorf("LogID() = %q, want %q", got, "u1_2026-08-30")
	}
}
