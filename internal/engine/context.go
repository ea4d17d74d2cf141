package engine

import (
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

var moodEmojis = map[string]string{
	"happy": "😊", "neutral": "😐", "sad": "😔", "angry": "😡",
	"tired": "😴", "bored": "🥱", "anxious": "😰", "excited": "🤩",
	"stressed": "😫",
}

// MoodEmoji returns the display emoji for a mood, with a neutral fallback.
func MoodEmoji(mood string) string {
	if e, ok := moodEmojis[mood]; ok {
		return e
	}
	return "😐"
}

// BuildUserContext assembles the cross-view snapshot: current mood, active
// goal, top trigger category, control streak, and total money saved.
func (e *Engine) BuildUserContext(snap *Snapshot) models.UserContext {
	ctx := models.UserContext{ControlStreak: snap.ControlStreak}

	if mood := snap.CurrentMood(); mood != nil {
		emoji := mood.Emoji
		if emoji == "" {
			emoji = MoodEmoji(mood.Mood)
		}
		ctx.MoodStatus = &models.MoodStatus{
			Mood:      mood.Mood,
			Emoji:     emoji,
			Intensity: mood.Intensity,
			Since:     mood.Timestamp,
		}
	}

	if goal := snap.ActiveGoal(); goal != nil {
		ctx.ActiveGoal = &models.GoalStatus{
			Name:      goal.Name,
			Target:    goal.TargetAmount,
			Current:   goal.CurrentAmount,
			Progress:  goal.Progress(),
			Remaining: goal.Remaining(),
		}
	}

	ctx.TopTrigger = topTrigger(snap.All)

	for _, tx := range snap.All {
		if tx.WasCancelled {
			ctx.TotalSaved += tx.Amount
		}
	}

	return ctx
}

// topTrigger finds the category that most often crossed the impulse-risk
// line in the recent history. Ties break toward the taxonomy order so the
// result is stable.
func topTrigger(history []models.Transaction) *models.TopTrigger {
	counts := make(map[string]int)
	limit := len(history)
	if limit > 50 {
		limit = 50
	}
	for _, tx := range history[:limit] {
		if tx.ImpulseScore >= 50 {
			counts[tx.Category]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	var best string
	for _, cat := range Categories {
		if counts[cat] > counts[best] {
			best = cat
		}
	}
	if best == "" {
		return nil
	}
	return &models.TopTrigger{Category: CategoryLabel(best), Count: counts[best]}
}
