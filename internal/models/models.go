package models

// Transaction is a committed or cancelled purchase attempt. Analysis alone
// never creates one; a row exists only after the user decided.
type Transaction struct {
	ID           int64   `json:"id"`
	Amount       float64 `json:"amount"`
	Merchant     string  `json:"merchant"`
	Category     string  `json:"category"`
	Timestamp    string  `json:"timestamp"`
	ImpulseScore float64 `json:"impulse_score"`
	RiskLevel    string  `json:"risk_level"`
	WasCancelled bool    `json:"was_cancelled"`
}

// MoodEntry is one mood check-in. The log is append-only; the most recent
// entry defines the user's current mood.
type MoodEntry struct {
	ID        int64  `json:"id"`
	Mood      string `json:"mood"`
	Emoji     string `json:"emoji"`
	Intensity int    `json:"intensity"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

// SavingsGoal accumulates credits from cancelled impulse purchases.
// CurrentAmount only ever grows.
type SavingsGoal struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline"`
	CreatedAt     string  `json:"created_at"`
}

// Remaining returns how much is still needed to fund the goal.
func (g SavingsGoal) Remaining() float64 {
	rem := g.TargetAmount - g.CurrentAmount
	if rem < 0 {
		return 0
	}
	return rem
}

// Progress returns completion percent, clamped to 100 for display.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// AccountabilityContact is someone the user trusts to know about risky
// purchases. A contact is stored even without phone/email but is only
// actionable when at least one is present.
type AccountabilityContact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Actionable reports whether the contact can actually be reached.
func (c AccountabilityContact) Actionable() bool {
	return c.Phone != "" || c.Email != ""
}

// UserSettings is the per-user singleton read by every analysis.
type UserSettings struct {
	LockDuration         int    `json:"lock_duration"`
	LockSensitivity      string `json:"lock_sensitivity"`
	EnableAccountability bool   `json:"enable_accountability"`
	EnableBreathing      bool   `json:"enable_breathing"`
	EnableMoodAlerts     bool   `json:"enable_mood_alerts"`
}

// DefaultSettings are applied to users who never saved settings.
func DefaultSettings() UserSettings {
	return UserSettings{
		LockDuration:         20,
		LockSensitivity:      "medium",
		EnableAccountability: true,
		EnableBreathing:      true,
		EnableMoodAlerts:     true,
	}
}

// UserStats is the aggregate row backing the dashboard.
type UserStats struct {
	TotalTransactions int     `json:"total_transactions"`
	CancelledCount    int     `json:"cancelled_count"`
	MoneySaved        float64 `json:"money_saved"`
	MoodEntries       int     `json:"mood_entries"`
}
