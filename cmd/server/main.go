package main

import (
	"database/sql"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/peakseason/planner/internal/config"
	"github.com/peakseason/planner/internal/db"
	"github.com/peakseason/planner/internal/installers"
	"github.com/peakseason/planner/internal/migrations"
	"github.com/peakseason/planner/internal/seed"
	"github.com/peakseason/planner/internal/workforce"
)

type server struct {
	auth    *authService
	db      *sql.DB
	store   *installers.Store
	tracker *installers.Tracker

	// mu serializes configuration writes against calculator reads; the
	// planner itself assumes a single writer.
	mu      sync.RWMutex
	planner *workforce.Planner
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seeded %d record(s)", stats.Inserts)
	}

	store := installers.NewStore(database)
	srv := &server{
		auth:    newAuthService(database, cfg.SessionSecret),
		db:      database,
		store:   store,
		tracker: installers.NewTracker(store),
		planner: workforce.NewDefaultPlanner(),
	}

	if err := srv.loadStoredSettings(); err != nil {
		log.Fatalf("failed to load stored settings: %v", err)
	}

	r := chi.NewRouter()
	r.Use(srv.authMiddleware)

	r.Get("/healthz", srv.handleHealthz)
	r.Post("/api/login", srv.handleLogin)
	r.Post("/api/logout", srv.handleLogout)

	r.Get("/api/workforce/config", srv.handleWorkforceConfig)
	r.Post("/api/workforce/config", srv.handleWorkforceConfigUpdate)
	r.Get("/api/workforce/compensation/{level}/{scenario}", srv.handleCompensation)
	r.Post("/api/workforce/compensation/all", srv.handleCompensationAll)
	r.Post("/api/workforce/capacity", srv.handleCapacity)
	r.Post("/api/workforce/recommend-crews", srv.handleRecommendCrews)
	r.Get("/api/workforce/break-even/all", srv.handleBreakEvenAll)
	r.Get("/api/workforce/break-even/{level}", srv.handleBreakEven)
	r.Post("/api/workforce/scenarios/compare", srv.handleScenariosCompare)
	r.Get("/api/workforce/recruitment-data/{level}", srv.handleRecruitmentData)
	r.Post("/api/workforce/financial-summary", srv.handleFinancialSummary)
	r.Post("/api/workforce/capacity-matrix", srv.handleCapacityMatrix)
	r.Post("/api/workforce/optimal-crew-size", srv.handleOptimalCrewSize)
	r.Post("/api/workforce/sensitivity-analysis", srv.handleSensitivityAnalysis)
	r.Get("/api/workforce/crew-efficiency-analysis", srv.handleCrewEfficiency)

	r.Get("/api/installers", srv.handleInstallersList)
	r.Post("/api/installers", srv.handleInstallersCreate)
	r.Get("/api/installers/revenue-summary", srv.handleInstallersRevenueSummary)
	r.Get("/api/installers/remaining-capacity", srv.handleInstallersRemainingCapacity)
	r.Get("/api/installers/recruitment/{level}", srv.handleInstallersRecruitment)
	r.Get("/api/installers/by-experience/{level}", srv.handleInstallersByExperience)
	r.Get("/api/installers/{id}", srv.handleInstallersGet)
	r.Put("/api/installers/{id}", srv.handleInstallersUpdate)
	r.Delete("/api/installers/{id}", srv.handleInstallersDelete)

	r.Get("/api/revenue-goals", srv.handleRevenueGoalsGet)
	r.Post("/api/revenue-goals", srv.handleRevenueGoalsUpdate)
	r.Get("/api/settings/revenue-ranges", srv.handleRevenueRangesGet)
	r.Post("/api/settings/revenue-ranges", srv.handleRevenueRangesUpdate)
	r.Get("/api/settings/season-dates", srv.handleSeasonDatesGet)
	r.Post("/api/settings/season-dates", srv.handleSeasonDatesUpdate)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}
