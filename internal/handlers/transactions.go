package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/lifecycle"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// TransactionRequest is the shared body of analyze, commit and cancel.
type TransactionRequest struct {
	Amount         float64  `json:"amount"`
	Merchant       string   `json:"merchant"`
	Category       string   `json:"category"`
	Timestamp      string   `json:"timestamp"`
	MLProbability  *float64 `json:"ml_probability"`
	IdempotencyKey string   `json:"idempotency_key"`
}

// candidate converts the request, defaulting a missing timestamp to now.
func (req *TransactionRequest) candidate() (engine.Candidate, error) {
	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := engine.ParseTimestamp(req.Timestamp)
		if err != nil {
			return engine.Candidate{}, err
		}
		ts = parsed
	}
	return engine.Candidate{
		Amount:        req.Amount,
		Merchant:      req.Merchant,
		Category:      req.Category,
		Timestamp:     ts,
		MLProbability: req.MLProbability,
	}, nil
}

func decodeTransaction(w http.ResponseWriter, r *http.Request) (*TransactionRequest, engine.Candidate, bool) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, engine.Candidate{}, false
	}
	c, err := req.candidate()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, engine.Candidate{}, false
	}
	return &req, c, true
}

// Analyze handles POST /api/transactions/analyze. Read-only: nothing is
// persisted until the user commits or cancels.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}
	_, c, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	// An external model probability can ride in on the request; when the
	// model service is configured it fills the gap.
	if c.MLProbability == nil && h.mlClient != nil {
		if prob, err := h.mlClient.Probability(r.Context(), c.Amount, c.Category, c.Timestamp); err == nil {
			c.MLProbability = prob
		} else {
			log.Printf("Model service unavailable, scoring rule-only: %v", err)
		}
	}

	result, err := h.lifecycle.Analyze(uid, name, c)
	if err != nil {
		if errors.Is(err, engine.ErrValidation) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Analysis failed for user %s: %v", uid, err)
		respondError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	// Hand the client a key to attach to the commit/cancel that follows,
	// so retries of that decision are safe.
	resp := struct {
		*models.AnalysisResult
		IdempotencyKey string `json:"idempotency_key"`
	}{result, lifecycle.NewIdempotencyKey()}
	respondJSON(w, http.StatusOK, resp)
}

// Commit handles POST /api/transactions/commit: the user went through
// with the purchase.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, c, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycle.Commit(uid, name, req.IdempotencyKey, c)
	if err != nil {
		h.respondLifecycleError(w, uid, "commit", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "committed",
		"transaction_id": result.TransactionID,
		"impulse_score":  result.ImpulseScore,
	})
}

// Cancel handles POST /api/transactions/cancel: the user avoided the
// purchase. The response names the credited goal for the celebration UI.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, c, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycle.Cancel(uid, name, req.IdempotencyKey, c)
	if err != nil {
		h.respondLifecycleError(w, uid, "cancel", err)
		return
	}

	var goalCredited any
	if result.GoalCredited != "" {
		goalCredited = result.GoalCredited
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "cancelled",
		"transaction_id": result.TransactionID,
		"money_saved":    result.MoneySaved,
		"impulse_score":  result.ImpulseScore,
		"goal_credited":  goalCredited,
	})
}

func (h *Handler) respondLifecycleError(w http.ResponseWriter, uid, action string, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrDuplicate):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Failed to %s transaction for user %s: %v", action, uid, err)
		respondError(w, http.StatusInternalServerError, "Failed to record transaction")
	}
}

// Recent handles GET /api/transactions/recent.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	transactions, err := h.repo.ListTransactions(uid, 20)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

// Context handles GET /api/transactions/context: the cross-view snapshot.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	uid, name, ok := requireUser(w, r)
	if !ok {
		return
	}
	snap, err := h.lifecycle.Snapshot(uid, name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load context")
		return
	}
	respondJSON(w, http.StatusOK, h.engine.BuildUserContext(snap))
}

// GetSettings handles GET /api/transactions/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	settings, err := h.repo.GetSettings(uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

var validLockDurations = map[int]bool{10: true, 20: true, 30: true, 45: true, 60: true}

// SaveSettings handles POST /api/transactions/settings. Invalid values
// are rejected outright; the stored settings are untouched.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validLockDurations[settings.LockDuration] {
		respondError(w, http.StatusBadRequest, "lock_duration must be one of 10, 20, 30, 45, 60")
		return
	}
	switch settings.LockSensitivity {
	case "low", "medium", "high":
	default:
		respondError(w, http.StatusBadRequest, "lock_sensitivity must be low, medium or high")
		return
	}
	if err := h.repo.SaveSettings(uid, settings); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// DetectCategory handles POST /api/transactions/detect-category.
func (h *Handler) DetectCategory(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := requireUser(w, r); !ok {
		return
	}
	var req struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var category any
	if cat := engine.DetectCategory(req.Item); cat != "" {
		category = cat
	}
	respondJSON(w, http.StatusOK, map[string]any{"category": category, "item": req.Item})
}
