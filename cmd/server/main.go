package main

import (
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Rohan9731/HackTheVibe/internal/config"
	"github.com/Rohan9731/HackTheVibe/internal/database"
	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/handlers"
	"github.com/Rohan9731/HackTheVibe/internal/lifecycle"
	"github.com/Rohan9731/HackTheVibe/internal/mlscore"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	tuning, err := engine.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	eng := engine.New(tuning)

	lc := lifecycle.New(repo, eng)
	mlClient := mlscore.NewClient(cfg.MLEndpoint)

	h := handlers.New(repo, eng, lc, mlClient)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// API - Session
	r.Post("/api/login", h.Login)
	r.Get("/api/logout", h.Logout)
	r.Post("/api/seed-demo", h.SeedDemo)

	// API - Transactions
	r.Post("/api/transactions/analyze", h.Analyze)
	r.Post("/api/transactions/commit", h.Commit)
	r.Post("/api/transactions/cancel", h.Cancel)
	r.Get("/api/transactions/recent", h.Recent)
	r.Get("/api/transactions/context", h.Context)
	r.Get("/api/transactions/settings", h.GetSettings)
	r.Post("/api/transactions/settings", h.SaveSettings)
	r.Post("/api/transactions/detect-category", h.DetectCategory)

	// API - Mood
	r.Post("/api/mood/checkin", h.MoodCheckin)
	r.Get("/api/mood/recent", h.RecentMoods)
	r.Get("/api/mood/correlation", h.MoodCorrelation)

	// API - Dashboard
	r.Get("/api/dashboard/stats", h.Stats)
	r.Get("/api/dashboard/triggers", h.Triggers)
	r.Get("/api/dashboard/mood-correlation", h.MoodCorrelation)
	r.Post("/api/dashboard/savings-goal", h.AddSavingsGoal)
	r.Post("/api/dashboard/accountability-contact", h.AddContact)
	r.Post("/api/dashboard/clear-data", h.ClearData)

	log.Printf("Server starting on http://localhost:%s", cfg.ServerPort)
	for _, ip := range lanIPs() {
		log.Printf("LAN access: http://%s:%s", ip, cfg.ServerPort)
	}
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func lanIPs() []string {
	var ips []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return ips
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			ip = ip.To4()
			if ip == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips
}
