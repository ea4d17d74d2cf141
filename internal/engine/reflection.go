package engine

import (
	"fmt"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// Question chains are selected, not sampled: the pick index is derived
// from the candidate itself so the same inputs always produce the same
// questions.

var openerQuestions = []string{
	"Take a deep breath. Now ask yourself: do I truly NEED this?",
	"Pause. Close your eyes for 3 seconds. Now — is this a want or a need?",
	"Before deciding, rate your desire from 1 to 10. Is it above 7?",
}

var moodAwareQuestions = []string{
	"You logged feeling %s recently. Is this purchase trying to fix that emotion?",
	"Spending while %s carries a much higher regret rate. Are you sure?",
	"Would you still want this if you were feeling calm and content?",
}

var goalAwareQuestions = []string{
	"This %s is %.0f%% of what you need for %s. Worth it?",
	"Skip this %d more times and your %s is fully funded.",
	"Future-you with a %s, or present-you with this purchase — who wins?",
}

var timeAwareQuestions = []string{
	"It's %s — peak impulse hours. Would daytime-you approve this?",
	"Most late-night purchases are regretted by morning. Can this wait until tomorrow?",
	"Sleep on it. If you still want it tomorrow, it'll still be there.",
}

var genericQuestions = []string{
	"Will this matter in 7 days?",
	"Is this solving a feeling or a genuine need?",
	"Would you still buy this if you had to wait 24 hours?",
	"Are you buying this for present-you or future-you?",
	"Is there a free alternative that could meet this need?",
}

// negative moods that justify a mood-aware phase-2 question.
var spendTriggerMoods = map[string]bool{
	"sad": true, "angry": true, "anxious": true, "bored": true, "tired": true, "stressed": true,
}

// pick deterministically selects from a template list using candidate
// attributes as the seed.
func pick(c Candidate, n int) int {
	h := int(c.Amount) + c.Timestamp.Hour() + len(c.Merchant) + len(c.Category)
	if h < 0 {
		h = -h
	}
	return h % n
}

// ReflectiveQuestions builds the phase-tagged question chain shown during
// a lock. High risk gets all three phases, medium two, low one; there is
// always at least one question.
func (e *Engine) ReflectiveQuestions(c Candidate, score float64, shouldLock bool, snap *Snapshot) []models.ReflectiveQuestion {
	questions := []models.ReflectiveQuestion{{
		Text:  openerQuestions[pick(c, len(openerQuestions))],
		Phase: 1,
		Type:  "reflect",
	}}

	if !shouldLock && score < 40 {
		return questions
	}

	questions = append(questions, e.phaseTwo(c, snap))
	if !shouldLock {
		return questions
	}

	return append(questions, e.phaseThree(c, score, snap))
}

// phaseTwo picks the most personal context available: mood first, then
// goal, then late-night timing, then a generic fallback.
func (e *Engine) phaseTwo(c Candidate, snap *Snapshot) models.ReflectiveQuestion {
	i := pick(c, 3)

	if mood := snap.CurrentMood(); mood != nil && spendTriggerMoods[mood.Mood] && snap.Settings.EnableMoodAlerts {
		text := moodAwareQuestions[i]
		if i < 2 {
			text = fmt.Sprintf(text, mood.Mood)
		}
		return models.ReflectiveQuestion{Text: text, Phase: 2, Type: "mood_aware"}
	}

	if goal := snap.ActiveGoal(); goal != nil {
		remaining := goal.Remaining()
		switch i {
		case 0:
			pct := c.Amount / remaining * 100
			if pct > 100 {
				pct = 100
			}
			return models.ReflectiveQuestion{
				Text:  fmt.Sprintf(goalAwareQuestions[0], rupees(c.Amount), pct, goal.Name),
				Phase: 2, Type: "goal_aware",
			}
		case 1:
			skips := int(remaining / c.Amount)
			if skips < 1 {
				skips = 1
			}
			return models.ReflectiveQuestion{
				Text:  fmt.Sprintf(goalAwareQuestions[1], skips, goal.Name),
				Phase: 2, Type: "goal_aware",
			}
		default:
			return models.ReflectiveQuestion{
				Text:  fmt.Sprintf(goalAwareQuestions[2], goal.Name),
				Phase: 2, Type: "goal_aware",
			}
		}
	}

	if e.tuning.IsLateNight(c.Timestamp.Hour()) {
		text := timeAwareQuestions[i]
		if i == 0 {
			text = fmt.Sprintf(text, c.Timestamp.Format("15:04"))
		}
		return models.ReflectiveQuestion{Text: text, Phase: 2, Type: "time_aware"}
	}

	return models.ReflectiveQuestion{
		Text:  genericQuestions[pick(c, len(genericQuestions))],
		Phase: 2, Type: "generic",
	}
}

// phaseThree is the decide step: goal framing when one exists, otherwise
// score/amount framing.
func (e *Engine) phaseThree(c Candidate, score float64, snap *Snapshot) models.ReflectiveQuestion {
	if goal := snap.ActiveGoal(); goal != nil {
		return models.ReflectiveQuestion{
			Text: fmt.Sprintf("Last question: future-you with a %s — or %s gone right now? You decide.",
				goal.Name, rupees(c.Amount)),
			Phase: 3, Type: "final",
		}
	}
	switch pick(c, 3) {
	case 0:
		return models.ReflectiveQuestion{
			Text: fmt.Sprintf("Final thought: skip this and you keep %s. That's %s a year if this is weekly.",
				rupees(c.Amount), rupees(c.Amount*52)),
			Phase: 3, Type: "final",
		}
	case 1:
		return models.ReflectiveQuestion{
			Text: fmt.Sprintf("Your impulse score is %.0f/100. The data says pause. Trust the numbers or trust the urge?",
				score),
			Phase: 3, Type: "final",
		}
	default:
		return models.ReflectiveQuestion{
			Text:  "Imagine telling someone you respect about this purchase. Proud, or making excuses?",
			Phase: 3, Type: "final",
		}
	}
}
