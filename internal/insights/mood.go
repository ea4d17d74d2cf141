package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// correlationWindow is how far around a mood check-in spending is
// attributed to that mood.
const correlationWindow = 6 * time.Hour

// MoodCorrelation links emotional states to spending behavior.
type MoodCorrelation struct {
	MoodSpend    map[string]float64 `json:"mood_spend"`
	MoodCount    map[string]int     `json:"mood_count"`
	BaselineAvg  float64            `json:"baseline_avg"`
	Insights     []string           `json:"insights"`
	MoodTimeline []TimelinePoint    `json:"mood_timeline"`
}

type TimelinePoint struct {
	Date      string  `json:"date"`
	Mood      string  `json:"mood"`
	Emoji     string  `json:"emoji"`
	Spend     float64 `json:"spend"`
	Intensity int     `json:"intensity"`
}

// Correlate computes average spend inside the ±6h window around each mood
// check-in and turns the ratios into plain-language insights.
func Correlate(transactions []models.Transaction, moods []models.MoodEntry) MoodCorrelation {
	if len(moods) == 0 || len(transactions) == 0 {
		return MoodCorrelation{
			MoodSpend: map[string]float64{},
			MoodCount: map[string]int{},
			Insights:  []string{"Log some moods and make transactions to see how emotions affect your spending!"},
		}
	}

	type txPoint struct {
		ts     time.Time
		amount float64
	}
	var txs []txPoint
	for _, t := range transactions {
		ts, err := engine.ParseTimestamp(t.Timestamp)
		if err != nil {
			continue
		}
		txs = append(txs, txPoint{ts, t.Amount})
	}

	spendSamples := make(map[string][]float64)
	var timeline []TimelinePoint
	for _, m := range moods {
		mts, err := engine.ParseTimestamp(m.Timestamp)
		if err != nil {
			continue
		}
		var spend float64
		for _, t := range txs {
			if t.ts.After(mts.Add(-correlationWindow)) && t.ts.Before(mts.Add(correlationWindow)) {
				spend += t.amount
			}
		}
		spendSamples[m.Mood] = append(spendSamples[m.Mood], spend)
		emoji := m.Emoji
		if emoji == "" {
			emoji = engine.MoodEmoji(m.Mood)
		}
		timeline = append(timeline, TimelinePoint{
			Date:      mts.Format("2006-01-02 15:04"),
			Mood:      m.Mood,
			Emoji:     emoji,
			Spend:     spend,
			Intensity: m.Intensity,
		})
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })

	result := MoodCorrelation{
		MoodSpend:    make(map[string]float64, len(spendSamples)),
		MoodCount:    make(map[string]int, len(spendSamples)),
		MoodTimeline: timeline,
	}
	var total float64
	var n int
	for mood, samples := range spendSamples {
		var sum float64
		for _, s := range samples {
			sum += s
		}
		result.MoodSpend[mood] = sum / float64(len(samples))
		result.MoodCount[mood] = len(samples)
		total += sum
		n += len(samples)
	}
	if n > 0 {
		result.BaselineAvg = total / float64(n)
	}

	result.Insights = moodInsights(result.MoodSpend, result.BaselineAvg)
	return result
}

func moodInsights(moodSpend map[string]float64, baseline float64) []string {
	if baseline <= 0 {
		return []string{"Keep logging moods — spending patterns will emerge soon!"}
	}
	moods := make([]string, 0, len(moodSpend))
	for m := range moodSpend {
		moods = append(moods, m)
	}
	sort.Slice(moods, func(i, j int) bool {
		if moodSpend[moods[i]] != moodSpend[moods[j]] {
			return moodSpend[moods[i]] > moodSpend[moods[j]]
		}
		return moods[i] < moods[j]
	})

	var insights []string
	for _, mood := range moods {
		ratio := moodSpend[mood] / baseline
		switch {
		case ratio >= 2.0:
			insights = append(insights, fmt.Sprintf("You spend %.1fx more when %s — a major trigger!", ratio, mood))
		case ratio >= 1.3:
			insights = append(insights, fmt.Sprintf("%s moods increase spending by %d%%", engine.CategoryLabel(mood), int((ratio-1)*100)))
		case ratio > 0 && ratio <= 0.5:
			insights = append(insights, fmt.Sprintf("When %s, you spend %d%% less — nice control!", mood, int((1-ratio)*100)))
		}
	}
	if len(insights) == 0 {
		insights = append(insights, "Keep logging moods — spending patterns will emerge soon!")
	}
	return insights
}

// MoodCategoryMap shows which categories absorb spending in each mood.
func MoodCategoryMap(transactions []models.Transaction, moods []models.MoodEntry) map[string]map[string]float64 {
	result := make(map[string]map[string]float64)
	if len(moods) == 0 || len(transactions) == 0 {
		return result
	}
	for _, m := range moods {
		mts, err := engine.ParseTimestamp(m.Timestamp)
		if err != nil {
			continue
		}
		for _, t := range transactions {
			ts, err := engine.ParseTimestamp(t.Timestamp)
			if err != nil {
				continue
			}
			if ts.After(mts.Add(-correlationWindow)) && ts.Before(mts.Add(correlationWindow)) {
				if result[m.Mood] == nil {
					result[m.Mood] = make(map[string]float64)
				}
				result[m.Mood][t.Category] += t.Amount
			}
		}
	}
	return result
}
