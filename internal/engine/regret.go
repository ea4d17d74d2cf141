package engine

import (
	"fmt"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// RegretPrediction maps a candidate to a regret likelihood. Pure heuristic,
// no side effects, same inputs always give the same answer.
func (e *Engine) RegretPrediction(amount float64, category string) models.RegretPrediction {
	p, ok := e.tuning.RegretProbability[category]
	if !ok {
		p = 0.35
	}
	pct := int(p * 100)
	switch {
	case p >= 0.60:
		return models.RegretPrediction{
			Probability: pct,
			Level:       "high",
			Message:     fmt.Sprintf("%d%% of users with similar patterns regretted this within 3 days.", pct),
		}
	case p >= 0.35:
		return models.RegretPrediction{
			Probability: pct,
			Level:       "medium",
			Message:     fmt.Sprintf("About %d%% of similar purchases are later considered unnecessary.", pct),
		}
	default:
		return models.RegretPrediction{
			Probability: pct,
			Level:       "low",
			Message:     "This looks like a planned purchase — low regret likelihood.",
		}
	}
}

// SavingsImpact projects what skipping the purchase does for the active
// goal, or a generic compounding projection when no goal exists.
func (e *Engine) SavingsImpact(amount float64, snap *Snapshot) string {
	goal := snap.ActiveGoal()
	if goal == nil {
		return fmt.Sprintf("Skipping this 5 times saves %s. Weekly savings like this = %s/year.",
			rupees(amount*5), rupees(amount*52))
	}
	remaining := goal.Remaining()
	skips := int(remaining / amount)
	if skips < 1 {
		skips = 1
	}
	pct := amount / remaining * 100
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("This %s is %.1f%% of what you need for %s. Skip it %d times and the goal is fully funded.",
		rupees(amount), pct, goal.Name, skips)
}

// InterceptMessage is the one-line coaching message for the lock screen.
// Selection is by priority, not chance: goal context beats mood context
// beats the generic framing.
func (e *Engine) InterceptMessage(c Candidate, score float64, snap *Snapshot) string {
	name := snap.UserName
	if name == "" {
		name = "there"
	}
	cat := CategoryLabel(c.Category)

	if score >= 55 {
		if goal := snap.ActiveGoal(); goal != nil {
			delay := int(c.Amount / 150)
			if delay < 1 {
				delay = 1
			}
			return fmt.Sprintf("Hey %s, you're saving for %s. This %s on %s delays that goal by ~%d days. Still want to proceed?",
				name, goal.Name, rupees(c.Amount), cat, delay)
		}
		if mood := snap.CurrentMood(); mood != nil && spendTriggerMoods[mood.Mood] && snap.Settings.EnableMoodAlerts {
			return fmt.Sprintf("You recently felt %s. Spending in that state has a much higher regret rate. Take a breath first?",
				mood.Mood)
		}
		if e.tuning.IsLateNight(c.Timestamp.Hour()) {
			return fmt.Sprintf("Late night + %s = classic impulse combo. %s is a lot for something you might not need. Pause and think.",
				cat, rupees(c.Amount))
		}
		pause := snap.Settings.LockDuration
		if pause == 0 {
			pause = 20
		}
		return fmt.Sprintf("%s, your impulse score is %.0f/100. A %d-second pause could save you %s. Let's breathe.",
			name, score, pause, rupees(c.Amount))
	}

	if score >= 40 {
		return fmt.Sprintf("Quick check — is this %s on %s planned, or did something catch your eye?",
			rupees(c.Amount), cat)
	}

	return fmt.Sprintf("Looks planned and responsible. Go ahead, %s!", name)
}

// AccountabilityAlert previews the message a contact would receive for a
// locking purchase. Empty when disabled, no actionable contact exists, or
// the score is under the threshold. Nothing is actually sent.
func (e *Engine) AccountabilityAlert(c Candidate, score, threshold float64, snap *Snapshot) string {
	if !snap.Settings.EnableAccountability || score < threshold {
		return ""
	}
	for _, contact := range snap.Contacts {
		if !contact.Actionable() {
			continue
		}
		name := snap.UserName
		if name == "" {
			name = "Your friend"
		}
		return fmt.Sprintf("%s would be notified: \"%s is about to spend %s on %s (risk: %.0f/100)\"",
			contact.Name, name, rupees(c.Amount), CategoryLabel(c.Category), score)
	}
	return ""
}
