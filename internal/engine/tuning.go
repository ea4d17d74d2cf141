package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric constant the engine depends on. Defaults are
// compiled in; a YAML file can override any subset so the scoring model can
// be re-tuned without a rebuild.
type Tuning struct {
	Weights struct {
		TimeOfDay       float64 `yaml:"time_of_day"`
		AmountDeviation float64 `yaml:"amount_deviation"`
		CategoryRisk    float64 `yaml:"category_risk"`
		FrequencySpike  float64 `yaml:"frequency_spike"`
		MoodInfluence   float64 `yaml:"mood_influence"`
		DayPattern      float64 `yaml:"day_pattern"`
		RepeatCategory  float64 `yaml:"repeat_category"`
		ControlStreak   float64 `yaml:"control_streak"`
		GoalPressure    float64 `yaml:"goal_pressure"`
	} `yaml:"weights"`

	CategoryRisk      map[string]float64 `yaml:"category_risk"`
	MoodRisk          map[string]float64 `yaml:"mood_risk"`
	RegretProbability map[string]float64 `yaml:"regret_probability"`

	// Lock thresholds keyed by lock_sensitivity.
	LockThresholds map[string]float64 `yaml:"lock_thresholds"`

	// BlendWeight mixes an external ML probability into the rule score:
	// (1-w)*rule + w*ml*100. Zero means rule-only even when a probability
	// is supplied.
	BlendWeight float64 `yaml:"blend_weight"`

	// CreditFraction of a cancelled amount is routed to the active goal.
	CreditFraction float64 `yaml:"credit_fraction"`

	// Late-night window for time-aware reflection prompts. The window wraps
	// midnight: [start, 24) plus [0, end].
	LateNightStartHour int `yaml:"late_night_start_hour"`
	LateNightEndHour   int `yaml:"late_night_end_hour"`

	// Categories at or above this risk count as discretionary for the
	// goal-pressure factor.
	DiscretionaryRisk float64 `yaml:"discretionary_risk"`

	// IdempotencyWindowSeconds is how long a repeated commit/cancel for the
	// same (amount, merchant, timestamp) is treated as a duplicate.
	IdempotencyWindowSeconds int `yaml:"idempotency_window_seconds"`
}

// DefaultTuning returns the compiled-in scoring model.
func DefaultTuning() *Tuning {
	t := &Tuning{
		CategoryRisk: map[string]float64{
			"food_delivery":   0.85,
			"gaming":          0.92,
			"online_shopping": 0.80,
			"entertainment":   0.75,
			"alcohol":         0.95,
			"clothing":        0.60,
			"electronics":     0.70,
			"subscriptions":   0.50,
			"groceries":       0.10,
			"utilities":       0.05,
			"transport":       0.12,
			"healthcare":      0.05,
			"education":       0.08,
			"other":           0.40,
		},
		MoodRisk: map[string]float64{
			"angry":    0.95,
			"sad":      0.85,
			"stressed": 0.85,
			"anxious":  0.80,
			"bored":    0.75,
			"tired":    0.70,
			"excited":  0.40,
			"neutral":  0.25,
			"happy":    0.15,
		},
		RegretProbability: map[string]float64{
			"food_delivery":   0.55,
			"gaming":          0.72,
			"online_shopping": 0.65,
			"entertainment":   0.40,
			"alcohol":         0.78,
			"clothing":        0.50,
			"electronics":     0.45,
			"subscriptions":   0.30,
			"groceries":       0.05,
			"utilities":       0.02,
			"transport":       0.05,
			"healthcare":      0.03,
			"education":       0.05,
			"other":           0.35,
		},
		LockThresholds: map[string]float64{
			"low":    75,
			"medium": 55,
			"high":   40,
		},
		BlendWeight:              0.3,
		CreditFraction:           1.0,
		LateNightStartHour:       22,
		LateNightEndHour:         4,
		DiscretionaryRisk:        0.40,
		IdempotencyWindowSeconds: 5,
	}
	t.Weights.TimeOfDay = 20
	t.Weights.AmountDeviation = 20
	t.Weights.CategoryRisk = 15
	t.Weights.FrequencySpike = 10
	t.Weights.MoodInfluence = 10
	t.Weights.DayPattern = 5
	t.Weights.RepeatCategory = 5
	t.Weights.ControlStreak = 5
	t.Weights.GoalPressure = 10
	return t
}

// LoadTuning reads a YAML override file on top of the defaults. A missing
// file is not an error; a malformed one is.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) validate() error {
	sum := t.Weights.TimeOfDay + t.Weights.AmountDeviation + t.Weights.CategoryRisk +
		t.Weights.FrequencySpike + t.Weights.MoodInfluence + t.Weights.DayPattern +
		t.Weights.RepeatCategory + t.Weights.ControlStreak + t.Weights.GoalPressure
	if sum < 99.99 || sum > 100.01 {
		return fmt.Errorf("factor weights must sum to 100, got %.2f", sum)
	}
	if t.BlendWeight < 0 || t.BlendWeight > 1 {
		return fmt.Errorf("blend_weight must be in [0,1], got %.2f", t.BlendWeight)
	}
	if t.CreditFraction < 0 || t.CreditFraction > 1 {
		return fmt.Errorf("credit_fraction must be in [0,1], got %.2f", t.CreditFraction)
	}
	for _, s := range []string{"low", "medium", "high"} {
		if _, ok := t.LockThresholds[s]; !ok {
			return fmt.Errorf("lock_thresholds missing %q", s)
		}
	}
	return nil
}

// ThresholdFor returns the lock threshold for a sensitivity setting,
// falling back to medium for unknown values.
func (t *Tuning) ThresholdFor(sensitivity string) float64 {
	if v, ok := t.LockThresholds[sensitivity]; ok {
		return v
	}
	return t.LockThresholds["medium"]
}

// IsLateNight reports whether the hour falls in the impulse-prone window.
func (t *Tuning) IsLateNight(hour int) bool {
	return hour >= t.LateNightStartHour || hour <= t.LateNightEndHour
}
