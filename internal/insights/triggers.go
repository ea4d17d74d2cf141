// Package insights derives spending-pattern analytics from the context
// store: trigger heatmaps, top categories, and mood/spend correlation.
package insights

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// TriggerData is the payload for the triggers dashboard view.
type TriggerData struct {
	Heatmap          [7][24]float64       `json:"heatmap"`
	CategoryByHour   map[string][]float64 `json:"category_by_hour"`
	TopCategories    []CategoryTotal      `json:"top_categories"`
	Insights         []string             `json:"insights"`
	WeekendRatio     float64              `json:"weekend_ratio"`
	TransactionCount int                  `json:"transaction_count"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

func rupees(amount float64) string {
	return "₹" + humanize.CommafWithDigits(amount, 0)
}

// BuildTriggerData computes the full trigger analysis for a history.
func BuildTriggerData(history []models.Transaction) TriggerData {
	data := TriggerData{
		CategoryByHour:   buildCategoryByHour(history),
		TopCategories:    topCategories(history, 5),
		WeekendRatio:     weekendRatio(history),
		TransactionCount: len(history),
	}
	data.Heatmap = buildHeatmap(history)
	data.Insights = generateInsights(history, data)
	return data
}

// buildHeatmap sums spend into a Mon–Sun × hour grid.
func buildHeatmap(history []models.Transaction) [7][24]float64 {
	var grid [7][24]float64
	for _, tx := range history {
		ts, err := engine.ParseTimestamp(tx.Timestamp)
		if err != nil {
			continue
		}
		// time.Weekday has Sunday = 0; the grid is Monday-first.
		day := (int(ts.Weekday()) + 6) % 7
		grid[day][ts.Hour()] += tx.Amount
	}
	return grid
}

func buildCategoryByHour(history []models.Transaction) map[string][]float64 {
	byHour := make(map[string][]float64)
	for _, tx := range history {
		ts, err := engine.ParseTimestamp(tx.Timestamp)
		if err != nil {
			continue
		}
		if _, ok := byHour[tx.Category]; !ok {
			byHour[tx.Category] = make([]float64, 24)
		}
		byHour[tx.Category][ts.Hour()] += tx.Amount
	}
	return byHour
}

func topCategories(history []models.Transaction, n int) []CategoryTotal {
	totals := make(map[string]float64)
	for _, tx := range history {
		totals[tx.Category] += tx.Amount
	}
	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// weekendRatio compares average weekend transaction size to weekdays.
func weekendRatio(history []models.Transaction) float64 {
	var weSum, wdSum float64
	var weN, wdN int
	for _, tx := range history {
		ts, err := engine.ParseTimestamp(tx.Timestamp)
		if err != nil {
			continue
		}
		switch ts.Weekday() {
		case 0, 6: // Sunday, Saturday
			weSum += tx.Amount
			weN++
		default:
			wdSum += tx.Amount
			wdN++
		}
	}
	if weN == 0 || wdN == 0 || wdSum == 0 {
		return 0
	}
	ratio := (weSum / float64(weN)) / (wdSum / float64(wdN))
	return float64(int(ratio*10+0.5)) / 10
}

func lateNightCategory(history []models.Transaction) string {
	totals := make(map[string]float64)
	for _, tx := range history {
		ts, err := engine.ParseTimestamp(tx.Timestamp)
		if err != nil {
			continue
		}
		if h := ts.Hour(); h >= 22 || h <= 4 {
			totals[tx.Category] += tx.Amount
		}
	}
	var best string
	var bestTotal float64
	for cat, total := range totals {
		if total > bestTotal || (total == bestTotal && cat < best) {
			best, bestTotal = cat, total
		}
	}
	return best
}

func generateInsights(history []models.Transaction, data TriggerData) []string {
	if len(history) < 3 {
		return []string{"Make a few more transactions and patterns will start to emerge!"}
	}
	days := []string{"Mondays", "Tuesdays", "Wednesdays", "Thursdays", "Fridays", "Saturdays", "Sundays"}
	var insights []string

	peakDay, peakHour, peakValue := peakSlot(data.Heatmap)
	if peakValue > 0 {
		insights = append(insights, fmt.Sprintf("Peak spending: %s around %02d:00 (%s total)",
			days[peakDay], peakHour, rupees(peakValue)))
	}
	if cat := lateNightCategory(history); cat != "" {
		insights = append(insights, fmt.Sprintf("Late-night weakness: %s after 10 PM", engine.CategoryLabel(cat)))
	}
	if data.WeekendRatio > 1.3 {
		insights = append(insights, fmt.Sprintf("Weekend spending is %.1fx your weekday average", data.WeekendRatio))
	} else if data.WeekendRatio > 0 && data.WeekendRatio < 0.7 {
		insights = append(insights, "You actually spend less on weekends — good discipline!")
	}
	if len(data.TopCategories) > 0 {
		top := data.TopCategories[0]
		insights = append(insights, fmt.Sprintf("Top category: %s (%s)",
			engine.CategoryLabel(top.Category), rupees(top.Total)))
	}

	highRisk := 0
	for _, tx := range history {
		if tx.ImpulseScore >= 55 {
			highRisk++
		}
	}
	pct := highRisk * 100 / len(history)
	switch {
	case pct > 50:
		insights = append(insights, fmt.Sprintf("%d%% of transactions are impulse-risk — let's work on that!", pct))
	case pct > 20:
		insights = append(insights, fmt.Sprintf("%d%% impulse-risk rate — room for improvement", pct))
	default:
		insights = append(insights, fmt.Sprintf("Only %d%% impulse-risk — you're doing great!", pct))
	}

	var saved float64
	for _, tx := range history {
		if tx.WasCancelled {
			saved += tx.Amount
		}
	}
	if saved > 0 {
		insights = append(insights, fmt.Sprintf("You've saved %s by cancelling impulse purchases!", rupees(saved)))
	}
	return insights
}

func peakSlot(grid [7][24]float64) (int, int, float64) {
	var day, hour int
	var best float64
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			if grid[d][h] > best {
				day, hour, best = d, h, grid[d][h]
			}
		}
	}
	return day, hour, best
}
