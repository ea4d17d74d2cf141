package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// Factor keys, also the JSON map keys in AnalysisResult.Factors.
const (
	FactorTimeOfDay       = "time_of_day"
	FactorAmountDeviation = "amount_deviation"
	FactorCategoryRisk    = "category_risk"
	FactorFrequencySpike  = "frequency_spike"
	FactorMoodInfluence   = "mood_influence"
	FactorDayPattern      = "day_pattern"
	FactorRepeatCategory  = "repeat_category"
	FactorControlStreak   = "control_streak"
	FactorGoalPressure    = "goal_pressure"
)

// factor couples an evaluator with its base weight and enable condition so
// the aggregator can renormalize without knowing what each factor means.
type factor struct {
	key     string
	weight  func(t *Tuning) float64
	enabled func(s *Snapshot) bool
	eval    func(t *Tuning, c Candidate, s *Snapshot) models.FactorResult
}

var factorTable = []factor{
	{FactorTimeOfDay, func(t *Tuning) float64 { return t.Weights.TimeOfDay }, alwaysOn, scoreTimeOfDay},
	{FactorAmountDeviation, func(t *Tuning) float64 { return t.Weights.AmountDeviation }, alwaysOn, scoreAmountDeviation},
	{FactorCategoryRisk, func(t *Tuning) float64 { return t.Weights.CategoryRisk }, alwaysOn, scoreCategoryRisk},
	{FactorFrequencySpike, func(t *Tuning) float64 { return t.Weights.FrequencySpike }, alwaysOn, scoreFrequencySpike},
	{FactorMoodInfluence, func(t *Tuning) float64 { return t.Weights.MoodInfluence },
		func(s *Snapshot) bool { return s.Settings.EnableMoodAlerts }, scoreMoodInfluence},
	{FactorDayPattern, func(t *Tuning) float64 { return t.Weights.DayPattern }, alwaysOn, scoreDayPattern},
	{FactorRepeatCategory, func(t *Tuning) float64 { return t.Weights.RepeatCategory }, alwaysOn, scoreRepeatCategory},
	{FactorControlStreak, func(t *Tuning) float64 { return t.Weights.ControlStreak }, alwaysOn, scoreControlStreak},
	{FactorGoalPressure, func(t *Tuning) float64 { return t.Weights.GoalPressure }, alwaysOn, scoreGoalPressure},
}

func alwaysOn(*Snapshot) bool { return true }

func rupees(amount float64) string {
	return "₹" + humanize.CommafWithDigits(amount, 0)
}

// scoreTimeOfDay: small hours are the classic impulse window, working
// hours barely register.
func scoreTimeOfDay(_ *Tuning, c Candidate, _ *Snapshot) models.FactorResult {
	hour := c.Timestamp.Hour()
	var score float64
	switch {
	case hour <= 4:
		score = 0.95
	case hour == 23:
		score = 0.90
	case hour >= 21:
		score = 0.72
	case hour >= 18:
		score = 0.35
	case hour >= 8:
		score = 0.10
	case hour >= 5:
		score = 0.28
	default:
		score = 0.30
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Time of Day",
		Detail: c.Timestamp.Format("15:04"),
	}
}

// scoreAmountDeviation compares the amount to the user's committed
// history. With history it is a z-score against the rolling mean; without,
// absolute tiers.
func scoreAmountDeviation(_ *Tuning, c Candidate, s *Snapshot) models.FactorResult {
	if len(s.Committed) == 0 {
		var score float64
		switch {
		case c.Amount >= 3000:
			score = 0.82
		case c.Amount >= 1500:
			score = 0.65
		case c.Amount >= 500:
			score = 0.48
		case c.Amount >= 200:
			score = 0.30
		default:
			score = 0.15
		}
		return models.FactorResult{
			Score:  score,
			Label:  "Amount vs Usual",
			Detail: fmt.Sprintf("%s, no spending history yet", rupees(c.Amount)),
		}
	}

	var sum float64
	for _, tx := range s.Committed {
		sum += tx.Amount
	}
	mean := sum / float64(len(s.Committed))

	var std float64
	if len(s.Committed) > 1 {
		var sq float64
		for _, tx := range s.Committed {
			d := tx.Amount - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(s.Committed)))
	} else {
		std = mean * 0.5
	}

	var score float64
	var detail string
	if std == 0 {
		if c.Amount > mean {
			score = 0.55
		} else {
			score = 0.15
		}
		detail = fmt.Sprintf("%s vs flat average %s", rupees(c.Amount), rupees(mean))
	} else {
		z := (c.Amount - mean) / std
		score = clamp01(0.50 + z*0.20)
		detail = fmt.Sprintf("%s vs usual %s (%+.1fσ)", rupees(c.Amount), rupees(mean), z)
	}
	return models.FactorResult{Score: score, Label: "Amount vs Usual", Detail: detail}
}

func scoreCategoryRisk(t *Tuning, c Candidate, _ *Snapshot) models.FactorResult {
	risk, ok := t.CategoryRisk[c.Category]
	if !ok {
		risk = 0.40
	}
	return models.FactorResult{
		Score:  risk,
		Label:  "Category Risk",
		Detail: CategoryLabel(c.Category),
	}
}

// scoreFrequencySpike counts committed same-category purchases in the
// trailing 7 days; repeated impulse behavior compounds.
func scoreFrequencySpike(_ *Tuning, c Candidate, s *Snapshot) models.FactorResult {
	cutoff := c.Timestamp.Add(-7 * 24 * time.Hour)
	count := 0
	for _, tx := range s.Committed {
		ts, err := ParseTimestamp(tx.Timestamp)
		if err != nil {
			continue
		}
		if tx.Category == c.Category && ts.After(cutoff) && !ts.After(c.Timestamp) {
			count++
		}
	}
	var score float64
	switch {
	case count >= 6:
		score = 1.0
	case count >= 4:
		score = 0.75
	case count >= 2:
		score = 0.50
	case count >= 1:
		score = 0.30
	default:
		score = 0.10
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Frequency Spike",
		Detail: fmt.Sprintf("%d %s purchases in 7 days", count, CategoryLabel(c.Category)),
	}
}

// scoreMoodInfluence reads the latest mood; intensity nudges the base risk
// up or down.
func scoreMoodInfluence(t *Tuning, _ Candidate, s *Snapshot) models.FactorResult {
	mood := s.CurrentMood()
	if mood == nil {
		return models.FactorResult{
			Score:  0.35,
			Label:  "Mood Influence",
			Detail: "no mood logged",
		}
	}
	base, ok := t.MoodRisk[mood.Mood]
	if !ok {
		base = 0.35
	}
	score := base
	switch {
	case mood.Intensity >= 7:
		score = clamp01(base + 0.10)
	case mood.Intensity <= 3:
		score = clamp01(base - 0.10)
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Mood Influence",
		Detail: fmt.Sprintf("feeling %s (intensity %d/10)", mood.Mood, mood.Intensity),
	}
}

// scoreDayPattern: weekends and Fridays skew impulsive.
func scoreDayPattern(_ *Tuning, c Candidate, _ *Snapshot) models.FactorResult {
	day := c.Timestamp.Weekday()
	scores := map[time.Weekday]float64{
		time.Monday: 0.25, time.Tuesday: 0.20, time.Wednesday: 0.20,
		time.Thursday: 0.25, time.Friday: 0.50, time.Saturday: 0.65,
		time.Sunday: 0.72,
	}
	return models.FactorResult{
		Score:  scores[day],
		Label:  "Day Pattern",
		Detail: day.String(),
	}
}

// scoreRepeatCategory counts same-category purchases today, committed or
// cancelled; the urge repeating within a day is the strongest tell.
func scoreRepeatCategory(_ *Tuning, c Candidate, s *Snapshot) models.FactorResult {
	y, m, d := c.Timestamp.Date()
	count := 0
	for _, tx := range s.All {
		ts, err := ParseTimestamp(tx.Timestamp)
		if err != nil || tx.Category != c.Category {
			continue
		}
		ty, tm, td := ts.Date()
		if ty == y && tm == m && td == d {
			count++
		}
	}
	var score float64
	switch {
	case count >= 3:
		score = 0.95
	case count == 2:
		score = 0.70
	case count == 1:
		score = 0.40
	default:
		score = 0.10
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Repeat Category",
		Detail: fmt.Sprintf("%d same-category today", count),
	}
}

// scoreControlStreak rewards momentum: a run of avoided purchases slightly
// lowers the score, a broken streak is neutral.
func scoreControlStreak(_ *Tuning, _ Candidate, s *Snapshot) models.FactorResult {
	streak := s.ControlStreak
	var score float64
	switch {
	case streak >= 10:
		score = 0.0
	case streak >= 5:
		score = 0.15
	case streak >= 2:
		score = 0.30
	default:
		score = 0.45
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Control Streak",
		Detail: fmt.Sprintf("%d avoided in a row", streak),
	}
}

// scoreGoalPressure: discretionary spending while a goal is unfunded is
// scored by how much of the remaining target this purchase eats.
func scoreGoalPressure(t *Tuning, c Candidate, s *Snapshot) models.FactorResult {
	goal := s.ActiveGoal()
	if goal == nil {
		return models.FactorResult{
			Score:  0.10,
			Label:  "Goal Pressure",
			Detail: "no active savings goal",
		}
	}
	risk := t.CategoryRisk[c.Category]
	if risk < t.DiscretionaryRisk {
		return models.FactorResult{
			Score:  0.10,
			Label:  "Goal Pressure",
			Detail: fmt.Sprintf("%s is essential spending", CategoryLabel(c.Category)),
		}
	}
	share := c.Amount / goal.Remaining()
	var score float64
	switch {
	case share >= 0.5:
		score = 0.90
	case share >= 0.25:
		score = 0.70
	case share >= 0.1:
		score = 0.50
	case share >= 0.02:
		score = 0.35
	default:
		score = 0.20
	}
	return models.FactorResult{
		Score:  score,
		Label:  "Goal Pressure",
		Detail: fmt.Sprintf("%.0f%% of what %q still needs", share*100, goal.Name),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
