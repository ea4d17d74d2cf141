package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/insights"
	"github.com/Rohan9731/HackTheVibe/internal/models"
	"github.com/Rohan9731/HackTheVibe/internal/seed"
)

type gamificationLevel struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Tier  int    `json:"tier"`
}

func levelFor(saves int) gamificationLevel {
	switch {
	case saves >= 20:
		return gamificationLevel{"Zen Master", "🧘", 5}
	case saves >= 10:
		return gamificationLevel{"Impulse Warrior", "⚔️", 4}
	case saves >= 5:
		return gamificationLevel{"Smart Saver", "💎", 3}
	case saves >= 2:
		return gamificationLevel{"Mindful Spender", "🌱", 2}
	case saves >= 1:
		return gamificationLevel{"Awareness Beginner", "🌟", 1}
	default:
		return gamificationLevel{"Just Starting", "🚀", 0}
	}
}

// Stats handles GET /api/dashboard/stats: the one-call payload behind
// the dashboard view.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.repo.GetStats(uid)
	if err != nil {
		log.Printf("Failed to load stats for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	committed, err := h.repo.ListCommitted(uid, 500)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	recent, err := h.repo.ListTransactions(uid, 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	goals, err := h.repo.ListGoals(uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}
	contacts, err := h.repo.ListContacts(uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load contacts")
		return
	}
	streak, err := h.repo.GetControlStreak(uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load streak")
		return
	}

	var totalSpent, scoreSum float64
	catTotals := map[string]float64{}
	daily := map[string]float64{}
	for _, t := range committed {
		totalSpent += t.Amount
		scoreSum += t.ImpulseScore
		catTotals[t.Category] += t.Amount
		if len(t.Timestamp) >= 10 {
			daily[t.Timestamp[:10]] += t.Amount
		}
	}
	avgScore := 0.0
	if len(committed) > 0 {
		avgScore = math.Round(scoreSum/float64(len(committed))*10) / 10
	}

	if goals == nil {
		goals = []models.SavingsGoal{}
	}
	if contacts == nil {
		contacts = []models.AccountabilityContact{}
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user_name":           name,
		"total_transactions":  stats.TotalTransactions,
		"total_spent":         math.Round(totalSpent),
		"money_saved":         stats.MoneySaved,
		"cancelled_count":     stats.CancelledCount,
		"avg_impulse_score":   avgScore,
		"mood_entries":        stats.MoodEntries,
		"self_control_streak": streak,
		"level":               levelFor(stats.CancelledCount),
		"category_breakdown":  catTotals,
		"daily_spending":      daily,
		"savings_goals":       goals,
		"contacts":            contacts,
		"recent_transactions": recent,
	})
}

// Triggers handles GET /api/dashboard/triggers.
func (h *Handler) Triggers(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	history, err := h.repo.ListTransactions(uid, 500)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, insights.BuildTriggerData(history))
}

// AddSavingsGoal handles POST /api/dashboard/savings-goal.
func (h *Handler) AddSavingsGoal(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"target_amount"`
		Deadline     string  `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.TargetAmount <= 0 {
		respondError(w, http.StatusBadRequest, "Goal needs a name and a positive target")
		return
	}
	id, err := h.repo.InsertGoal(uid, models.SavingsGoal{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to create goal for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "created", "goal_id": id})
}

// AddContact handles POST /api/dashboard/accountability-contact.
func (h *Handler) AddContact(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Contact needs a name")
		return
	}
	id, err := h.repo.InsertContact(uid, models.AccountabilityContact{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add contact")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "added", "contact_id": id})
}

// SeedDemo handles POST /api/seed-demo: wipes the user and generates a
// 30-day demo history.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.repo.ClearUserData(uid); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	result, err := seed.Run(h.repo, h.engine, uid, name, 30)
	if err != nil {
		log.Printf("Failed to seed demo data for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to seed demo data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "seeded",
		"transactions": result.Transactions,
		"moods":        result.Moods,
		"goals":        result.Goals,
		"contacts":     result.Contacts,
	})
}

// ClearData handles POST /api/dashboard/clear-data.
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.repo.ClearUserData(uid); err != nil {
		log.Printf("Failed to clear data for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to clear data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
