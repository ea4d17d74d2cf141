package engine

import (
	"reflect"
	"testing"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

func TestReflectiveQuestionsChainLength(t *testing.T) {
	eng := New(nil)
	snap := freshSnapshot()
	c := Candidate{
		Amount: 1500, Merchant: "Swiggy", Category: "food_delivery",
		Timestamp: mustTime(t, "2025-06-09T23:40:00Z"),
	}

	cases := []struct {
		score      float64
		shouldLock bool
		want       int
	}{
		{75, true, 3},
		{45, false, 2},
		{20, false, 1},
	}
	for _, tc := range cases {
		got := eng.ReflectiveQuestions(c, tc.score, tc.shouldLock, snap)
		if len(got) != tc.want {
			t.Fatalf("score %v lock %v: %d questions, want %d", tc.score, tc.shouldLock, len(got), tc.want)
		}
		for i, q := range got {
			if q.Phase != i+1 {
				t.Fatalf("question %d has phase %d", i, q.Phase)
			}
			if q.Text == "" {
				t.Fatalf("question %d is empty", i)
			}
		}
	}
}

func TestReflectiveQuestionsDeterministic(t *testing.T) {
	eng := New(nil)
	snap := freshSnapshot()
	snap.Moods = []models.MoodEntry{{Mood: "bored", Intensity: 6}}
	c := Candidate{
		Amount: 2499, Merchant: "Amazon", Category: "online_shopping",
		Timestamp: mustTime(t, "2025-06-14T23:05:00Z"),
	}

	first := eng.ReflectiveQuestions(c, 80, true, snap)
	for i := 0; i < 5; i++ {
		got := eng.ReflectiveQuestions(c, 80, true, snap)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%+v\nwant\n%+v", i, got, first)
		}
	}
}

func TestPhaseTwoPriority(t *testing.T) {
	eng := New(nil)
	c := Candidate{
		Amount: 1500, Merchant: "Swiggy", Category: "food_delivery",
		Timestamp: mustTime(t, "2025-06-09T23:40:00Z"),
	}
	goal := models.SavingsGoal{ID: 1, Name: "Trip", TargetAmount: 10000, CurrentAmount: 2000}

	// A trigger mood beats everything else.
	snap := freshSnapshot()
	snap.Moods = []models.MoodEntry{{Mood: "sad", Intensity: 7}}
	snap.Goals = []models.SavingsGoal{goal}
	if got := eng.phaseTwo(c, snap); got.Type != "mood_aware" {
		t.Fatalf("type = %q, want mood_aware", got.Type)
	}

	// Without a trigger mood the goal wins.
	snap = freshSnapshot()
	snap.Moods = []models.MoodEntry{{Mood: "happy", Intensity: 5}}
	snap.Goals = []models.SavingsGoal{goal}
	if got := eng.phaseTwo(c, snap); got.Type != "goal_aware" {
		t.Fatalf("type = %q, want goal_aware", got.Type)
	}

	// No mood or goal, late at night: time-aware.
	snap = freshSnapshot()
	if got := eng.phaseTwo(c, snap); got.Type != "time_aware" {
		t.Fatalf("type = %q, want time_aware", got.Type)
	}

	// Daytime with no context falls back to generic.
	day := c
	day.Timestamp = mustTime(t, "2025-06-09T14:00:00Z")
	if got := eng.phaseTwo(day, freshSnapshot()); got.Type != "generic" {
		t.Fatalf("type = %q, want generic", got.Type)
	}

	// Mood alerts disabled: the logged mood is ignored.
	snap = freshSnapshot()
	snap.Settings.EnableMoodAlerts = false
	snap.Moods = []models.MoodEntry{{Mood: "sad", Intensity: 7}}
	snap.Goals = []models.SavingsGoal{goal}
	if got := eng.phaseTwo(c, snap); got.Type != "goal_aware" {
		t.Fatalf("type = %q, want goal_aware when mood alerts off", got.Type)
	}
}

func TestPhaseThreeGoalFraming(t *testing.T) {
	eng := New(nil)
	c := Candidate{
		Amount: 1500, Merchant: "Swiggy", Category: "food_delivery",
		Timestamp: mustTime(t, "2025-06-09T23:40:00Z"),
	}

	snap := freshSnapshot()
	snap.Goals = []models.SavingsGoal{{ID: 1, Name: "Trip", TargetAmount: 10000}}
	got := eng.phaseThree(c, 80, snap)
	if got.Phase != 3 || got.Type != "final" {
		t.Fatalf("phase/type = %d/%q, want 3/final", got.Phase, got.Type)
	}

	got = eng.phaseThree(c, 80, freshSnapshot())
	if got.Phase != 3 || got.Text == "" {
		t.Fatalf("no-goal phase three = %+v", got)
	}
}
