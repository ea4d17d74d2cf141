// Package seed generates a realistic 30-day demo history for a user.
// It runs on demand through the API, never automatically.
package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/database"
	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

var merchants = map[string][]string{
	"food_delivery":   {"Swiggy", "Zomato", "Uber Eats", "Domino's"},
	"gaming":          {"Steam", "PlayStation Store", "Google Play Games", "Epic Games"},
	"online_shopping": {"Amazon", "Flipkart", "Myntra", "Meesho"},
	"entertainment":   {"Netflix", "BookMyShow", "Spotify", "Disney+"},
	"alcohol":         {"Drizly", "Wine Shop", "Liquor Store"},
	"clothing":        {"Zara", "H&M", "Uniqlo", "Nike"},
	"electronics":     {"Croma", "Apple Store", "Samsung", "Reliance Digital"},
	"groceries":       {"BigBasket", "Blinkit", "DMart", "Zepto"},
	"utilities":       {"Electricity Board", "Jio", "Airtel", "Water Bill"},
	"transport":       {"Uber", "Ola", "Metro Card", "Rapido"},
	"healthcare":      {"Apollo Pharmacy", "1mg", "Practo"},
	"education":       {"Udemy", "Coursera", "Amazon Books"},
	"subscriptions":   {"YouTube Premium", "iCloud", "ChatGPT Plus"},
}

var amountRanges = map[string][2]float64{
	"food_delivery":   {150, 900},
	"gaming":          {200, 4000},
	"online_shopping": {300, 8000},
	"entertainment":   {100, 2000},
	"alcohol":         {300, 3000},
	"clothing":        {500, 5000},
	"electronics":     {1000, 15000},
	"groceries":       {200, 1500},
	"utilities":       {200, 2000},
	"transport":       {50, 500},
	"healthcare":      {100, 3000},
	"education":       {200, 5000},
	"subscriptions":   {99, 999},
}

type moodChoice struct {
	mood   string
	weight int
}

// Negative moods are over-represented on weekends and late nights.
var weightedMoods = []moodChoice{
	{"happy", 1}, {"sad", 3}, {"angry", 2}, {"tired", 3},
	{"bored", 4}, {"anxious", 3}, {"excited", 1}, {"stressed", 2},
}

var allMoods = []string{"happy", "neutral", "sad", "stressed", "bored", "anxious", "excited", "angry", "tired"}

// Result reports how much demo data was created.
type Result struct {
	Transactions int `json:"transactions"`
	Moods        int `json:"moods"`
	Goals        int `json:"goals"`
	Contacts     int `json:"contacts"`
}

// Run populates the user with moods, transactions, one goal and one
// contact. Each generated transaction is scored with the real engine
// against the history generated so far.
func Run(repo *database.Repository, eng *engine.Engine, userID, userName string, days int) (*Result, error) {
	if days <= 0 {
		days = 30
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	var moods []models.MoodEntry
	for d := 0; d < days; d++ {
		day := now.AddDate(0, 0, -(days - d))
		for i := 0; i < 1+rng.Intn(2); i++ {
			hours := []int{8, 12, 15, 19, 22, 1}
			hour := hours[rng.Intn(len(hours))]
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, time.UTC)

			mood := allMoods[rng.Intn(len(allMoods))]
			if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday || hour >= 22 {
				mood = pickWeighted(rng, weightedMoods)
			}
			entry := models.MoodEntry{
				Mood:      mood,
				Emoji:     engine.MoodEmoji(mood),
				Intensity: 3 + rng.Intn(7),
				Timestamp: ts.Format(time.RFC3339),
			}
			if _, err := repo.InsertMood(userID, entry); err != nil {
				return nil, fmt.Errorf("seed mood: %w", err)
			}
			moods = append(moods, entry)
		}
	}
	// Most recent first, matching how the store reads them back.
	sort.Slice(moods, func(i, j int) bool { return moods[i].Timestamp > moods[j].Timestamp })

	tuning := eng.Tuning()
	categories := make([]string, 0, len(merchants))
	for c := range merchants {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	snap := &engine.Snapshot{
		Settings: models.DefaultSettings(),
		UserName: userName,
	}

	txCount := 0
	for d := 0; d < days; d++ {
		day := now.AddDate(0, 0, -(days - d))
		for i := 0; i < 2+rng.Intn(5); i++ {
			var hour int
			if rng.Float64() < 0.35 {
				late := []int{22, 23, 0, 1, 2, 3}
				hour = late[rng.Intn(len(late))]
			} else {
				hour = 8 + rng.Intn(14)
			}
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, time.UTC)

			category := pickCategory(rng, categories, tuning)
			names := merchants[category]
			merchant := names[rng.Intn(len(names))]

			bounds := amountRanges[category]
			amount := float64(int(bounds[0] + rng.Float64()*(bounds[1]-bounds[0])))

			snap.Moods = moodsBefore(moods, ts)
			score, risk, _ := eng.Score(engine.Candidate{
				Amount:    amount,
				Merchant:  merchant,
				Category:  category,
				Timestamp: ts,
			}, snap)

			cancelled := score >= 55 && rng.Float64() < 0.3
			tx := models.Transaction{
				Amount:       amount,
				Merchant:     merchant,
				Category:     category,
				Timestamp:    ts.Format(time.RFC3339),
				ImpulseScore: score,
				RiskLevel:    risk,
				WasCancelled: cancelled,
			}
			if _, err := repo.RecordOutcome(userID, tx, 0, 0); err != nil {
				return nil, fmt.Errorf("seed transaction: %w", err)
			}
			txCount++

			snap.All = append([]models.Transaction{tx}, snap.All...)
			if !cancelled {
				snap.Committed = append([]models.Transaction{tx}, snap.Committed...)
			}
			if cancelled {
				snap.ControlStreak++
			} else {
				snap.ControlStreak = 0
			}
		}
	}

	goal := models.SavingsGoal{
		Name:          "New MacBook Pro",
		TargetAmount:  150000,
		CurrentAmount: float64(5000 + rng.Intn(20001)),
		Deadline:      now.AddDate(0, 0, 180).Format("2006-01-02"),
		CreatedAt:     now.AddDate(0, 0, -days).Format(time.RFC3339),
	}
	if _, err := repo.InsertGoal(userID, goal); err != nil {
		return nil, fmt.Errorf("seed goal: %w", err)
	}

	contact := models.AccountabilityContact{
		Name:  "Priya (Best Friend)",
		Phone: "+91 98765 43210",
		Email: "priya@example.com",
	}
	if _, err := repo.InsertContact(userID, contact); err != nil {
		return nil, fmt.Errorf("seed contact: %w", err)
	}

	return &Result{
		Transactions: txCount,
		Moods:        len(moods),
		Goals:        1,
		Contacts:     1,
	}, nil
}

func pickWeighted(rng *rand.Rand, choices []moodChoice) string {
	total := 0
	for _, c := range choices {
		total += c.weight
	}
	n := rng.Intn(total)
	for _, c := range choices {
		n -= c.weight
		if n < 0 {
			return c.mood
		}
	}
	return choices[len(choices)-1].mood
}

// pickCategory biases the draw toward high-risk categories so seeded
// histories look like someone who needs this app.
func pickCategory(rng *rand.Rand, categories []string, tuning *engine.Tuning) string {
	weights := make([]float64, len(categories))
	total := 0.0
	for i, c := range categories {
		w, ok := tuning.CategoryRisk[c]
		if !ok {
			w = 0.3
		}
		weights[i] = w + 0.1
		total += weights[i]
	}
	n := rng.Float64() * total
	for i, w := range weights {
		n -= w
		if n < 0 {
			return categories[i]
		}
	}
	return categories[len(categories)-1]
}

func moodsBefore(moods []models.MoodEntry, ts time.Time) []models.MoodEntry {
	cutoff := ts.Format(time.RFC3339)
	var out []models.MoodEntry
	for _, m := range moods {
		if m.Timestamp <= cutoff {
			out = append(out, m)
			if len(out) == 5 {
				break
			}
		}
	}
	return out
}
