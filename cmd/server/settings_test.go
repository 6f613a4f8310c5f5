package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peakseason/planner/internal/workforce"
)

func TestHandleRevenueGoalsGetSeedsDefaults(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleRevenueGoalsGet(rec, jsonRequest(t, http.MethodGet, "/api/revenue-goals", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var goals revenueGoals
	decodeEnvelope(t, rec, true, &goals)

	nearlyEqual(t, "worst case", goals.WorstCase, 1200000)
	nearlyEqual(t, "base case", goals.BaseCase, 1500000)
	nearlyEqual(t, "best case", goals.BestCase, 1800000)
}

func TestHandleRevenueGoalsUpdatePersists(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleRevenueGoalsUpdate(rec, jsonRequest(t, http.MethodPost, "/api/revenue-goals", map[string]any{
		"worst_case": 1000000,
		"base_case":  1300000,
		"best_case":  1600000,
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored, err := srv.getRevenueGoals()
	if err != nil {
		t.Fatalf("getRevenueGoals: %v", err)
	}
	nearlyEqual(t, "stored base case", stored.BaseCase, 1300000)
}

func TestHandleRevenueGoalsUpdateRejectsBadOrdering(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]any{
		{"worst_case": 1500000, "base_case": 1200000, "best_case": 1800000},
		{"worst_case": 0, "base_case": 1500000, "best_case": 1800000},
		{"worst_case": 1200000, "base_case": 1200000, "best_case": 1800000},
	} {
		rec := httptest.NewRecorder()
		srv.handleRevenueGoalsUpdate(rec, jsonRequest(t, http.MethodPost, "/api/revenue-goals", body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleRevenueRangesUpdateAppliesToPlanner(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleRevenueRangesUpdate(rec, jsonRequest(t, http.MethodPost, "/api/settings/revenue-ranges", map[string]any{
		"beginner": map[string]float64{"min": 2600, "base": 3300, "max": 4100},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	cfg := srv.planner.Export()
	nearlyEqual(t, "applied base", cfg.ExperienceLevels["beginner"].RevenueRange.Base, 3300)
	// Other levels keep their stock records.
	nearlyEqual(t, "untouched expert base", cfg.ExperienceLevels["expert"].RevenueRange.Base, 7750)
}

func TestHandleRevenueRangesUpdateRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]any{
		{"apprentice": map[string]float64{"min": 1, "base": 2, "max": 3}},
		{"beginner": map[string]float64{"min": 5000, "base": 3000, "max": 6000}},
	} {
		rec := httptest.NewRecorder()
		srv.handleRevenueRangesUpdate(rec, jsonRequest(t, http.MethodPost, "/api/settings/revenue-ranges", body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d, want 400", body, rec.Code)
		}
	}

	// A rejected update must not leak into the planner.
	cfg := srv.planner.Export()
	nearlyEqual(t, "beginner base unchanged", cfg.ExperienceLevels["beginner"].RevenueRange.Base, 3250)
}

func TestHandleSeasonDatesUpdateRequiresAllSeasons(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleSeasonDatesUpdate(rec, jsonRequest(t, http.MethodPost, "/api/settings/season-dates", map[string]any{
		"pre_season": map[string]string{"start_date": "2025-08-18", "end_date": "2025-09-28"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSeasonDatesUpdateRejectsInvertedDates(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{
		"pre_season":  map[string]string{"start_date": "2025-09-28", "end_date": "2025-08-18"},
		"in_season":   map[string]string{"start_date": "2025-09-29", "end_date": "2025-12-07"},
		"post_season": map[string]string{"start_date": "2025-12-08", "end_date": "2026-02-01"},
		"off_season":  map[string]string{"start_date": "2026-02-02", "end_date": "2026-03-01"},
	}

	rec := httptest.NewRecorder()
	srv.handleSeasonDatesUpdate(rec, jsonRequest(t, http.MethodPost, "/api/settings/season-dates", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSeasonDatesUpdateAppliesAndPersists(t *testing.T) {
	srv := newTestServer(t)

	// Stretch the in-season window by one week.
	body := map[string]any{
		"pre_season":  map[string]string{"start_date": "2025-08-18", "end_date": "2025-09-28"},
		"in_season":   map[string]string{"start_date": "2025-09-29", "end_date": "2025-12-14"},
		"post_season": map[string]string{"start_date": "2025-12-15", "end_date": "2026-02-01"},
		"off_season":  map[string]string{"start_date": "2026-02-02", "end_date": "2026-03-01"},
	}

	rec := httptest.NewRecorder()
	srv.handleSeasonDatesUpdate(rec, jsonRequest(t, http.MethodPost, "/api/settings/season-dates", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	cfg := srv.planner.Export()
	if got := cfg.Seasons["in_season"].EndDate.String(); got != "2025-12-14" {
		t.Fatalf("in_season end date = %s, want 2025-12-14", got)
	}

	// A fresh server over the same database replays the stored document.
	replay := &server{db: srv.db, planner: workforce.NewDefaultPlanner()}
	if err := replay.loadStoredSettings(); err != nil {
		t.Fatalf("loadStoredSettings: %v", err)
	}
	if got := replay.planner.Export().Seasons["in_season"].EndDate.String(); got != "2025-12-14" {
		t.Fatalf("replayed in_season end date = %s, want 2025-12-14", got)
	}
}

func TestHandleRevenueRangesGetReflectsPlanner(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleRevenueRangesGet(rec, jsonRequest(t, http.MethodGet, "/api/settings/revenue-ranges", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var ranges map[string]workforce.RevenueRange
	decodeEnvelope(t, rec, true, &ranges)

	if len(ranges) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(ranges))
	}
	nearlyEqual(t, "advanced base", ranges["advanced"].Base, 6250)
}
