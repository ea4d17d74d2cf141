package engine

import (
	"math"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// Score runs every factor and aggregates the weighted sum into a 0–100
// impulse score plus risk tier. Disabled factors appear in the map with
// score 0 and weight 0; their weight is redistributed proportionally so
// enabled weights always sum to 100.
func (e *Engine) Score(c Candidate, snap *Snapshot) (float64, string, map[string]models.FactorResult) {
	factors := make(map[string]models.FactorResult, len(factorTable))

	var enabledWeight float64
	for _, f := range factorTable {
		if f.enabled(snap) {
			enabledWeight += f.weight(e.tuning)
		}
	}

	var total float64
	for _, f := range factorTable {
		if !f.enabled(snap) {
			factors[f.key] = models.FactorResult{
				Score:  0,
				Weight: 0,
				Label:  disabledLabel(f.key),
				Detail: "disabled in settings",
			}
			continue
		}
		res := f.eval(e.tuning, c, snap)
		res.Score = math.Round(res.Score*100) / 100
		res.Weight = f.weight(e.tuning) * 100 / enabledWeight
		factors[f.key] = res
		total += res.Score * res.Weight
	}

	score := blend(total, c.MLProbability, e.tuning.BlendWeight)
	score = math.Round(score*10) / 10
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, riskLevel(score), factors
}

// blend mixes an external ML probability into the rule score without ever
// replacing it, keeping behavior explainable and nil-safe.
func blend(ruleScore float64, mlProbability *float64, weight float64) float64 {
	if mlProbability == nil || weight <= 0 {
		return ruleScore
	}
	return (1-weight)*ruleScore + weight*(*mlProbability)*100
}

// riskLevel buckets a score independent of the lock threshold.
func riskLevel(score float64) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

func disabledLabel(key string) string {
	switch key {
	case FactorMoodInfluence:
		return "Mood Influence"
	default:
		return key
	}
}
