package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/peakseason/planner/internal/workforce"
)

// Settings table keys. Each holds one JSON document replaced wholesale.
const (
	settingRevenueRanges = "revenue_ranges"
	settingSeasonDates   = "season_dates"
)

type revenueGoals struct {
	WorstCase float64 `json:"worst_case"`
	BaseCase  float64 `json:"base_case"`
	BestCase  float64 `json:"best_case"`
}

func (g revenueGoals) forScenario(scenario workforce.Scenario) float64 {
	switch scenario {
	case workforce.WorstCase:
		return g.WorstCase
	case workforce.BestCase:
		return g.BestCase
	}
	return g.BaseCase
}

func (s *server) handleRevenueGoalsGet(w http.ResponseWriter, r *http.Request) {
	goals, err := s.getRevenueGoals()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, goals)
}

func (s *server) handleRevenueGoalsUpdate(w http.ResponseWriter, r *http.Request) {
	var goals revenueGoals
	if err := decodeJSON(r, &goals); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if goals.WorstCase <= 0 || goals.BaseCase <= 0 || goals.BestCase <= 0 {
		respondError(w, http.StatusBadRequest, "revenue goals must be positive")
		return
	}
	if !(goals.WorstCase < goals.BaseCase && goals.BaseCase < goals.BestCase) {
		respondError(w, http.StatusBadRequest, "revenue goals must satisfy worst_case < base_case < best_case")
		return
	}

	if err := s.ensureRevenueGoals(); err != nil {
		respondDomainError(w, err)
		return
	}
	_, err := s.db.Exec(`
		UPDATE revenue_goals
		SET worst_case = ?, base_case = ?, best_case = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, goals.WorstCase, goals.BaseCase, goals.BestCase)
	if err != nil {
		respondDomainError(w, fmt.Errorf("update revenue goals: %w", err))
		return
	}
	respondData(w, http.StatusOK, goals)
}

func (s *server) ensureRevenueGoals() error {
	_, err := s.db.Exec(`
		INSERT INTO revenue_goals (id, worst_case, base_case, best_case)
		VALUES (1, 1200000, 1500000, 1800000)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("insert default revenue goals: %w", err)
	}
	return nil
}

func (s *server) getRevenueGoals() (revenueGoals, error) {
	if err := s.ensureRevenueGoals(); err != nil {
		return revenueGoals{}, err
	}

	var goals revenueGoals
	err := s.db.QueryRow(`
		SELECT worst_case, base_case, best_case
		FROM revenue_goals
		WHERE id = 1
	`).Scan(&goals.WorstCase, &goals.BaseCase, &goals.BestCase)
	if err != nil {
		return revenueGoals{}, fmt.Errorf("query revenue goals: %w", err)
	}
	return goals, nil
}

func (s *server) handleRevenueRangesGet(w http.ResponseWriter, r *http.Request) {
	ranges, err := s.currentRevenueRanges()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, ranges)
}

func (s *server) handleRevenueRangesUpdate(w http.ResponseWriter, r *http.Request) {
	var ranges map[string]workforce.RevenueRange
	if err := decodeJSON(r, &ranges); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ranges) == 0 {
		respondError(w, http.StatusBadRequest, "no revenue ranges provided")
		return
	}

	if err := s.applyRevenueRanges(ranges); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := s.setSetting(settingRevenueRanges, ranges); err != nil {
		respondDomainError(w, err)
		return
	}

	updated, err := s.currentRevenueRanges()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// currentRevenueRanges reads the ranges the planner is actually using.
func (s *server) currentRevenueRanges() (map[string]workforce.RevenueRange, error) {
	s.mu.RLock()
	cfg := s.planner.Export()
	s.mu.RUnlock()

	ranges := make(map[string]workforce.RevenueRange, len(cfg.ExperienceLevels))
	for key, level := range cfg.ExperienceLevels {
		ranges[key] = level.RevenueRange
	}
	return ranges, nil
}

// applyRevenueRanges swaps new revenue ranges into the planner, preserving
// each level's name and per-diem rate.
func (s *server) applyRevenueRanges(ranges map[string]workforce.RevenueRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.planner.Export()
	levels := make(map[string]workforce.ExperienceLevel, len(ranges))
	for key, r := range ranges {
		level, ok := cfg.ExperienceLevels[key]
		if !ok {
			return fmt.Errorf("%w: unknown experience level %q", workforce.ErrInvalidConfig, key)
		}
		level.RevenueRange = r
		levels[key] = level
	}
	return s.planner.ApplyUpdate(workforce.ConfigUpdate{ExperienceLevels: levels})
}

type seasonDates struct {
	StartDate workforce.Date `json:"start_date"`
	EndDate   workforce.Date `json:"end_date"`
}

func (s *server) handleSeasonDatesGet(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cfg := s.planner.Export()
	s.mu.RUnlock()

	dates := make(map[string]seasonDates, len(cfg.Seasons))
	for key, season := range cfg.Seasons {
		dates[key] = seasonDates{StartDate: season.StartDate, EndDate: season.EndDate}
	}
	respondData(w, http.StatusOK, dates)
}

// Season date replacement is all-or-nothing: every season must be present
// with both dates.
func (s *server) handleSeasonDatesUpdate(w http.ResponseWriter, r *http.Request) {
	var dates map[string]seasonDates
	if err := decodeJSON(r, &dates); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, key := range workforce.SeasonKeys() {
		entry, ok := dates[key]
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("season %q is missing", key))
			return
		}
		if entry.StartDate.IsZero() || entry.EndDate.IsZero() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("season %q must have both start_date and end_date", key))
			return
		}
	}
	if err := s.applySeasonDates(dates); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := s.setSetting(settingSeasonDates, dates); err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, dates)
}

// applySeasonDates swaps new season dates into the planner, preserving each
// season's name, cadence, and production eligibility.
func (s *server) applySeasonDates(dates map[string]seasonDates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.planner.Export()
	seasons := make(map[string]workforce.SeasonConfig, len(dates))
	for key, entry := range dates {
		season, ok := cfg.Seasons[key]
		if !ok {
			return fmt.Errorf("%w: unknown season %q", workforce.ErrInvalidConfig, key)
		}
		season.StartDate = entry.StartDate
		season.EndDate = entry.EndDate
		seasons[key] = season
	}
	return s.planner.ApplyUpdate(workforce.ConfigUpdate{Seasons: seasons})
}

// loadStoredSettings replays persisted setting documents onto the planner at
// boot so configuration survives restarts.
func (s *server) loadStoredSettings() error {
	var ranges map[string]workforce.RevenueRange
	found, err := s.getSetting(settingRevenueRanges, &ranges)
	if err != nil {
		return err
	}
	if found {
		if err := s.applyRevenueRanges(ranges); err != nil {
			return fmt.Errorf("apply stored revenue ranges: %w", err)
		}
	}

	var dates map[string]seasonDates
	found, err = s.getSetting(settingSeasonDates, &dates)
	if err != nil {
		return err
	}
	if found {
		if err := s.applySeasonDates(dates); err != nil {
			return fmt.Errorf("apply stored season dates: %w", err)
		}
	}
	return nil
}

func (s *server) getSetting(key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query setting %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode setting %q: %w", key, err)
	}
	return true, nil
}

func (s *server) setSetting(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("store setting %q: %w", key, err)
	}
	return nil
}
