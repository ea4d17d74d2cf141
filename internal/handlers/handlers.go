package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Rohan9731/HackTheVibe/internal/database"
	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/lifecycle"
	"github.com/Rohan9731/HackTheVibe/internal/mlscore"
)

const (
	userCookie = "vibeshield_user"
	nameCookie = "vibeshield_name"
)

type Handler struct {
	repo      *database.Repository
	engine    *engine.Engine
	lifecycle *lifecycle.Manager
	mlClient  *mlscore.Client
}

func New(repo *database.Repository, eng *engine.Engine, lc *lifecycle.Manager, ml *mlscore.Client) *Handler {
	return &Handler{
		repo:      repo,
		engine:    eng,
		lifecycle: lc,
		mlClient:  ml,
	}
}

// currentUser reads the session cookies. An empty uid means not logged in.
func currentUser(r *http.Request) (uid, name string) {
	if c, err := r.Cookie(userCookie); err == nil {
		uid = c.Value
	}
	name = "User"
	if c, err := r.Cookie(nameCookie); err == nil && c.Value != "" {
		name = c.Value
	}
	return uid, name
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// requireUser is the guard every API handler runs first.
func requireUser(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	uid, name := currentUser(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "Not logged in")
		return "", "", false
	}
	return uid, name, true
}

// Login handles POST /api/login: mints a user id for the given name and
// sets the session cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		respondError(w, http.StatusBadRequest, "Please enter your name")
		return
	}

	userID := uuid.NewString()
	if err := h.repo.EnsureUser(userID, username); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: userCookie, Value: userID, Path: "/", MaxAge: 86400})
	http.SetCookie(w, &http.Cookie{Name: nameCookie, Value: username, Path: "/", MaxAge: 86400})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "user_id": userID})
}

// Logout clears the session cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: userCookie, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: nameCookie, Value: "", Path: "/", MaxAge: -1})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
