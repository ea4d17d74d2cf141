// Package engine computes impulse risk for candidate purchases. Analysis is
// a pure function over a read snapshot of the user's context; nothing here
// touches storage.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// ErrValidation wraps every candidate-rejection error so callers can map
// the whole class to a 400 response.
var ErrValidation = errors.New("invalid transaction")

// Candidate is a proposed purchase under analysis.
type Candidate struct {
	Amount    float64
	Merchant  string
	Category  string
	Timestamp time.Time

	// MLProbability is an opaque external probability in [0,1]. When nil
	// the score is rule-only.
	MLProbability *float64
}

// Snapshot is the read-only view of the context store that an analysis
// runs against. Histories are ordered most recent first.
type Snapshot struct {
	Committed     []models.Transaction
	All           []models.Transaction
	Moods         []models.MoodEntry
	Goals         []models.SavingsGoal
	Contacts      []models.AccountabilityContact
	Settings      models.UserSettings
	ControlStreak int
	UserName      string
}

// ActiveGoal returns the first goal that still needs funding, or nil.
func (s *Snapshot) ActiveGoal() *models.SavingsGoal {
	for i := range s.Goals {
		if s.Goals[i].Remaining() > 0 {
			return &s.Goals[i]
		}
	}
	return nil
}

// CurrentMood returns the latest mood entry, or nil when none logged.
func (s *Snapshot) CurrentMood() *models.MoodEntry {
	if len(s.Moods) == 0 {
		return nil
	}
	return &s.Moods[0]
}

// Engine runs the scoring pipeline with a fixed tuning.
type Engine struct {
	tuning *Tuning
}

// New builds an engine. A nil tuning falls back to the defaults.
func New(tuning *Tuning) *Engine {
	if tuning == nil {
		tuning = DefaultTuning()
	}
	return &Engine{tuning: tuning}
}

// Tuning exposes the active constants for components that share them
// (lifecycle credit fraction, idempotency window).
func (e *Engine) Tuning() *Tuning { return e.tuning }

// ValidateCandidate rejects malformed candidates before any scoring work.
func (e *Engine) ValidateCandidate(c Candidate) error {
	if c.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if c.Merchant == "" {
		return fmt.Errorf("%w: merchant is required", ErrValidation)
	}
	if !ValidCategory(c.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, c.Category)
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrValidation)
	}
	if c.MLProbability != nil && (*c.MLProbability < 0 || *c.MLProbability > 1) {
		return fmt.Errorf("%w: ml_probability must be in [0,1]", ErrValidation)
	}
	return nil
}

// Analyze runs the full pipeline: factors, aggregation, reflection,
// regret, context snapshot. It has no side effects.
func (e *Engine) Analyze(c Candidate, snap *Snapshot) (*models.AnalysisResult, error) {
	if err := e.ValidateCandidate(c); err != nil {
		return nil, err
	}

	score, risk, factors := e.Score(c, snap)

	threshold := e.tuning.ThresholdFor(snap.Settings.LockSensitivity)
	shouldLock := score >= threshold

	lockDuration := snap.Settings.LockDuration
	if lockDuration == 0 {
		lockDuration = 20
	}
	if lockDuration < 5 {
		lockDuration = 5
	}
	if lockDuration > 120 {
		lockDuration = 120
	}

	regret := e.RegretPrediction(c.Amount, c.Category)
	result := &models.AnalysisResult{
		ImpulseScore:  score,
		RiskLevel:     risk,
		Factors:       factors,
		ShouldLock:    shouldLock,
		LockThreshold: threshold,
		LockDuration:  lockDuration,
		MLProbability: c.MLProbability,
		Regret:        regret,
		SavingsImpact: e.SavingsImpact(c.Amount, snap),
		AIMessage:     e.InterceptMessage(c, score, snap),
		UserContext:   e.BuildUserContext(snap),
		Settings: models.AnalysisSettings{
			EnableBreathing:  snap.Settings.EnableBreathing,
			EnableMoodAlerts: snap.Settings.EnableMoodAlerts,
		},
		TransactionData: models.TransactionData{
			Amount:    c.Amount,
			Merchant:  c.Merchant,
			Category:  c.Category,
			Timestamp: c.Timestamp.Format(time.RFC3339),
		},
	}

	result.ReflectiveQuestions = e.ReflectiveQuestions(c, score, shouldLock, snap)
	if len(result.ReflectiveQuestions) > 0 {
		result.ReflectiveQuestion = result.ReflectiveQuestions[0].Text
	}

	if alert := e.AccountabilityAlert(c, score, threshold, snap); alert != "" {
		result.AccountabilityAlert = alert
	}

	return result, nil
}

// ParseTimestamp accepts the timestamp formats clients actually send:
// RFC3339 and the bare ISO form without a zone.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q", ErrValidation, s)
}
