package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/insights"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

var validMoods = map[string]bool{
	"happy": true, "neutral": true, "sad": true, "stressed": true,
	"bored": true, "anxious": true, "excited": true, "angry": true,
	"tired": true,
}

// MoodCheckin handles POST /api/mood/checkin.
func (h *Handler) MoodCheckin(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Mood      string `json:"mood"`
		Intensity int    `json:"intensity"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validMoods[req.Mood] {
		respondError(w, http.StatusBadRequest, "Unknown mood")
		return
	}
	if req.Intensity < 1 || req.Intensity > 10 {
		respondError(w, http.StatusBadRequest, "Intensity must be between 1 and 10")
		return
	}

	entry := models.MoodEntry{
		Mood:      req.Mood,
		Emoji:     engine.MoodEmoji(req.Mood),
		Intensity: req.Intensity,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Notes:     req.Notes,
	}
	id, err := h.repo.InsertMood(uid, entry)
	if err != nil {
		log.Printf("Failed to save mood for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to save mood")
		return
	}
	entry.ID = id
	respondJSON(w, http.StatusOK, map[string]any{"status": "logged", "entry": entry})
}

// RecentMoods handles GET /api/mood/recent.
func (h *Handler) RecentMoods(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	moods, err := h.repo.ListMoods(uid, 20)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load moods")
		return
	}
	if moods == nil {
		moods = []models.MoodEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"moods": moods})
}

// MoodCorrelation handles GET /api/mood/correlation: spend within six
// hours of each mood check-in against the overall baseline.
func (h *Handler) MoodCorrelation(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactions, err := h.repo.ListCommitted(uid, 500)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	moods, err := h.repo.ListMoods(uid, 500)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load moods")
		return
	}
	resp := struct {
		insights.MoodCorrelation
		MoodCategories map[string]map[string]float64 `json:"mood_categories"`
	}{
		MoodCorrelation: insights.Correlate(transactions, moods),
		MoodCategories:  insights.MoodCategoryMap(transactions, moods),
	}
	respondJSON(w, http.StatusOK, resp)
}
