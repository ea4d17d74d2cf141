package mlscore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientOptional(t *testing.T) {
	if c := NewClient(""); c != nil {
		t.Fatal("empty endpoint should return nil client")
	}
	if c := NewClient("http://localhost:9999"); c == nil {
		t.Fatal("configured endpoint should return a client")
	}
}

func TestProbability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score" {
			t.Fatalf("path = %q, want /score", r.URL.Path)
		}
		var req struct {
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
			Hour     int     `json:"hour"`
			Weekday  int     `json:"weekday"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 1500 || req.Category != "food_delivery" || req.Hour != 23 {
			t.Fatalf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]float64{"probability": 0.8})
	}))
	defer srv.Close()

	ts, _ := time.Parse(time.RFC3339, "2025-06-09T23:40:00Z")
	client := NewClient(srv.URL)
	p, err := client.Probability(context.Background(), 1500, "food_delivery", ts)
	if err != nil {
		t.Fatalf("Probability: %v", err)
	}
	if p == nil || *p != 0.8 {
		t.Fatalf("probability = %v, want 0.8", p)
	}
}

func TestProbabilityRejectsOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"probability": 1.7})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Probability(context.Background(), 100, "other", time.Now()); err == nil {
		t.Fatal("out-of-range probability should error")
	}
}

func TestProbabilityServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Probability(context.Background(), 100, "other", time.Now()); err == nil {
		t.Fatal("server error should propagate")
	}
}
