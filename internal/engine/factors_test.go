package engine

import (
	"math"
	"testing"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

func at(t *testing.T, s string) Candidate {
	t.Helper()
	return Candidate{Amount: 100, Merchant: "M", Category: "other", Timestamp: mustTime(t, s)}
}

func TestScoreTimeOfDay(t *testing.T) {
	cases := []struct {
		ts   string
		want float64
	}{
		{"2025-06-09T02:00:00Z", 0.95},
		{"2025-06-09T04:00:00Z", 0.95},
		{"2025-06-09T23:10:00Z", 0.90},
		{"2025-06-09T21:30:00Z", 0.72},
		{"2025-06-09T19:00:00Z", 0.35},
		{"2025-06-09T11:00:00Z", 0.10},
		{"2025-06-09T06:30:00Z", 0.28},
	}
	for _, tc := range cases {
		got := scoreTimeOfDay(nil, at(t, tc.ts), nil)
		if got.Score != tc.want {
			t.Fatalf("timeOfDay(%s) = %v, want %v", tc.ts, got.Score, tc.want)
		}
	}
}

func TestScoreAmountDeviationNoHistory(t *testing.T) {
	cases := []struct {
		amount float64
		want   float64
	}{
		{5000, 0.82},
		{3000, 0.82},
		{1500, 0.65},
		{500, 0.48},
		{200, 0.30},
		{50, 0.15},
	}
	snap := &Snapshot{}
	for _, tc := range cases {
		c := Candidate{Amount: tc.amount}
		got := scoreAmountDeviation(nil, c, snap)
		if got.Score != tc.want {
			t.Fatalf("amountDeviation(%v) = %v, want %v", tc.amount, got.Score, tc.want)
		}
	}
}

func TestScoreAmountDeviationZScore(t *testing.T) {
	snap := &Snapshot{Committed: []models.Transaction{
		{Amount: 100}, {Amount: 200}, {Amount: 300},
	}}

	// mean 200, population std ≈ 81.65; a matching amount sits at 0.50.
	got := scoreAmountDeviation(nil, Candidate{Amount: 200}, snap)
	if got.Score != 0.50 {
		t.Fatalf("at-mean score = %v, want 0.50", got.Score)
	}

	// z ≈ 3.67 clamps at 1.0.
	got = scoreAmountDeviation(nil, Candidate{Amount: 500}, snap)
	if got.Score != 1.0 {
		t.Fatalf("outlier score = %v, want 1.0", got.Score)
	}
}

func TestScoreAmountDeviationFlatHistory(t *testing.T) {
	snap := &Snapshot{Committed: []models.Transaction{
		{Amount: 100}, {Amount: 100}, {Amount: 100},
	}}
	if got := scoreAmountDeviation(nil, Candidate{Amount: 150}, snap); got.Score != 0.55 {
		t.Fatalf("above flat average = %v, want 0.55", got.Score)
	}
	if got := scoreAmountDeviation(nil, Candidate{Amount: 80}, snap); got.Score != 0.15 {
		t.Fatalf("below flat average = %v, want 0.15", got.Score)
	}
}

func TestScoreCategoryRisk(t *testing.T) {
	tuning := DefaultTuning()
	cases := []struct {
		category string
		want     float64
	}{
		{"alcohol", 0.95},
		{"gaming", 0.92},
		{"groceries", 0.10},
		{"utilities", 0.05},
	}
	for _, tc := range cases {
		got := scoreCategoryRisk(tuning, Candidate{Category: tc.category}, nil)
		if got.Score != tc.want {
			t.Fatalf("categoryRisk(%s) = %v, want %v", tc.category, got.Score, tc.want)
		}
	}
}

func TestScoreFrequencySpike(t *testing.T) {
	now := mustTime(t, "2025-06-09T12:00:00Z")
	mk := func(n int) *Snapshot {
		s := &Snapshot{}
		for i := 0; i < n; i++ {
			s.Committed = append(s.Committed, models.Transaction{
				Category:  "gaming",
				Timestamp: now.Add(-time.Duration(i+1) * 24 * time.Hour).Format(time.RFC3339),
			})
		}
		return s
	}
	cases := []struct {
		count int
		want  float64
	}{
		{0, 0.10}, {1, 0.30}, {2, 0.50}, {4, 0.75}, {6, 1.0},
	}
	c := Candidate{Category: "gaming", Timestamp: now}
	for _, tc := range cases {
		got := scoreFrequencySpike(nil, c, mk(tc.count))
		if got.Score != tc.want {
			t.Fatalf("frequencySpike(%d) = %v, want %v", tc.count, got.Score, tc.want)
		}
	}

	// Same category outside the window does not count.
	old := &Snapshot{Committed: []models.Transaction{{
		Category: "gaming", Timestamp: now.Add(-8 * 24 * time.Hour).Format(time.RFC3339),
	}}}
	if got := scoreFrequencySpike(nil, c, old); got.Score != 0.10 {
		t.Fatalf("stale purchase counted: %v", got.Score)
	}
}

func TestScoreMoodInfluence(t *testing.T) {
	tuning := DefaultTuning()
	cases := []struct {
		mood      string
		intensity int
		want      float64
	}{
		{"angry", 5, 0.95},
		{"angry", 9, 1.0}, // 0.95 + 0.10 clamped
		{"sad", 8, 0.95},
		{"sad", 2, 0.75},
		{"stressed", 8, 0.95},
		{"stressed", 5, 0.85},
		{"happy", 5, 0.15},
		{"happy", 2, 0.05},
	}
	for _, tc := range cases {
		snap := &Snapshot{Moods: []models.MoodEntry{{Mood: tc.mood, Intensity: tc.intensity}}}
		got := scoreMoodInfluence(tuning, Candidate{}, snap)
		if math.Abs(got.Score-tc.want) > 1e-9 {
			t.Fatalf("moodInfluence(%s/%d) = %v, want %v", tc.mood, tc.intensity, got.Score, tc.want)
		}
	}

	got := scoreMoodInfluence(tuning, Candidate{}, &Snapshot{})
	if got.Score != 0.35 {
		t.Fatalf("no-mood score = %v, want 0.35", got.Score)
	}
}

func TestScoreDayPattern(t *testing.T) {
	cases := []struct {
		ts   string
		want float64
	}{
		{"2025-06-09T12:00:00Z", 0.25}, // Monday
		{"2025-06-13T12:00:00Z", 0.50}, // Friday
		{"2025-06-14T12:00:00Z", 0.65}, // Saturday
		{"2025-06-15T12:00:00Z", 0.72}, // Sunday
	}
	for _, tc := range cases {
		got := scoreDayPattern(nil, at(t, tc.ts), nil)
		if got.Score != tc.want {
			t.Fatalf("dayPattern(%s) = %v, want %v", tc.ts, got.Score, tc.want)
		}
	}
}

func TestScoreRepeatCategory(t *testing.T) {
	ts := mustTime(t, "2025-06-09T20:00:00Z")
	mk := func(n int) *Snapshot {
		s := &Snapshot{}
		for i := 0; i < n; i++ {
			s.All = append(s.All, models.Transaction{
				Category:  "food_delivery",
				Timestamp: ts.Add(-time.Duration(i+1) * time.Hour).Format(time.RFC3339),
			})
		}
		return s
	}
	cases := []struct {
		count int
		want  float64
	}{
		{0, 0.10}, {1, 0.40}, {2, 0.70}, {3, 0.95},
	}
	c := Candidate{Category: "food_delivery", Timestamp: ts}
	for _, tc := range cases {
		got := scoreRepeatCategory(nil, c, mk(tc.count))
		if got.Score != tc.want {
			t.Fatalf("repeatCategory(%d) = %v, want %v", tc.count, got.Score, tc.want)
		}
	}
}

func TestScoreControlStreak(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 0.45}, {1, 0.45}, {2, 0.30}, {5, 0.15}, {10, 0.0}, {25, 0.0},
	}
	for _, tc := range cases {
		got := scoreControlStreak(nil, Candidate{}, &Snapshot{ControlStreak: tc.streak})
		if got.Score != tc.want {
			t.Fatalf("controlStreak(%d) = %v, want %v", tc.streak, got.Score, tc.want)
		}
	}
}

func TestScoreGoalPressure(t *testing.T) {
	tuning := DefaultTuning()
	goal := models.SavingsGoal{ID: 1, Name: "Trip", TargetAmount: 10000, CurrentAmount: 2000}
	snap := &Snapshot{Goals: []models.SavingsGoal{goal}}

	cases := []struct {
		amount float64
		want   float64
	}{
		{5000, 0.90}, // 62.5% of remaining
		{2500, 0.70},
		{1000, 0.50},
		{200, 0.35},
		{100, 0.20},
	}
	for _, tc := range cases {
		c := Candidate{Amount: tc.amount, Category: "gaming"}
		got := scoreGoalPressure(tuning, c, snap)
		if got.Score != tc.want {
			t.Fatalf("goalPressure(%v) = %v, want %v", tc.amount, got.Score, tc.want)
		}
	}

	// Essential categories bypass goal pressure entirely.
	got := scoreGoalPressure(tuning, Candidate{Amount: 5000, Category: "groceries"}, snap)
	if got.Score != 0.10 {
		t.Fatalf("essential category = %v, want 0.10", got.Score)
	}

	got = scoreGoalPressure(tuning, Candidate{Amount: 5000, Category: "gaming"}, &Snapshot{})
	if got.Score != 0.10 {
		t.Fatalf("no goal = %v, want 0.10", got.Score)
	}
}
