package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peakseason/planner/internal/workforce"
)

func (s *server) handleWorkforceConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cfg := s.planner.Export()
	s.mu.RUnlock()

	respondData(w, http.StatusOK, cfg)
}

func (s *server) handleWorkforceConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var update workforce.ConfigUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	err := s.planner.ApplyUpdate(update)
	var cfg workforce.Config
	if err == nil {
		cfg = s.planner.Export()
	}
	s.mu.Unlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, cfg)
}

func (s *server) handleCompensation(w http.ResponseWriter, r *http.Request) {
	level := strings.ToLower(chi.URLParam(r, "level"))
	scenario, err := parseScenario(chi.URLParam(r, "scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	multiplier := 1.0
	if raw := r.URL.Query().Get("performance_multiplier"); raw != "" {
		multiplier, err = strconv.ParseFloat(raw, 64)
		if err != nil || multiplier < 0 {
			respondError(w, http.StatusBadRequest, "performance_multiplier must be a non-negative number")
			return
		}
	}

	s.mu.RLock()
	result, err := s.planner.Compensation(level, scenario, multiplier)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type compensationAllRequest struct {
	PerformanceMultiplier *float64 `json:"performance_multiplier,omitempty"`
}

func (s *server) handleCompensationAll(w http.ResponseWriter, r *http.Request) {
	var req compensationAllRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	multiplier := 1.0
	if req.PerformanceMultiplier != nil {
		if *req.PerformanceMultiplier < 0 {
			respondError(w, http.StatusBadRequest, "performance_multiplier must be a non-negative number")
			return
		}
		multiplier = *req.PerformanceMultiplier
	}

	s.mu.RLock()
	grid, err := s.planner.AllCompensation(multiplier)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, grid)
}

type capacityRequest struct {
	Composition workforce.CrewComposition `json:"composition"`
	Scenario    string                    `json:"scenario,omitempty"`
}

func (s *server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	var req capacityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	scenario, err := parseScenario(req.Scenario)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	result, err := s.planner.Capacity(req.Composition, scenario)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type recommendRequest struct {
	TargetRevenue float64 `json:"target_revenue"`
	Scenario      string  `json:"scenario,omitempty"`
}

type recommendResponse struct {
	RunID string `json:"run_id"`
	workforce.RecommendationResult
}

func (s *server) handleRecommendCrews(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TargetRevenue <= 0 {
		respondError(w, http.StatusBadRequest, "target_revenue must be positive")
		return
	}
	scenario, err := parseScenario(req.Scenario)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	result, err := s.planner.Recommend(req.TargetRevenue, scenario)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, recommendResponse{
		RunID:                uuid.NewString(),
		RecommendationResult: result,
	})
}

func (s *server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	level := strings.ToLower(chi.URLParam(r, "level"))

	s.mu.RLock()
	result, err := s.planner.BreakEven(level)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (s *server) handleBreakEvenAll(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	results := s.planner.AllBreakEven()
	s.mu.RUnlock()

	respondData(w, http.StatusOK, results)
}

type compareRequest struct {
	Compositions []workforce.NamedComposition `json:"compositions"`
	Scenarios    []string                     `json:"scenarios,omitempty"`
}

type compareResponse struct {
	RunID      string                                               `json:"run_id"`
	Comparison map[string]map[workforce.Scenario]workforce.CapacityResult `json:"comparison"`
}

func (s *server) handleScenariosCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Compositions) == 0 {
		respondError(w, http.StatusBadRequest, "compositions must not be empty")
		return
	}

	scenarios := make([]workforce.Scenario, 0, len(req.Scenarios))
	for _, raw := range req.Scenarios {
		scenario, err := parseScenario(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		scenarios = append(scenarios, scenario)
	}

	s.mu.RLock()
	comparison, err := s.planner.CompareScenarios(req.Compositions, scenarios)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, compareResponse{
		RunID:      uuid.NewString(),
		Comparison: comparison,
	})
}

func (s *server) handleRecruitmentData(w http.ResponseWriter, r *http.Request) {
	level := strings.ToLower(chi.URLParam(r, "level"))

	s.mu.RLock()
	result, err := s.planner.Recruitment(level)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type financialSummaryRequest struct {
	Composition workforce.CrewComposition `json:"composition"`
}

type financialSummaryResponse struct {
	RunID     string                                            `json:"run_id"`
	Summaries map[workforce.Scenario]workforce.FinancialSummary `json:"summaries"`
}

func (s *server) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	var req financialSummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	summaries, err := s.planner.FinancialSummaries(req.Composition)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, financialSummaryResponse{
		RunID:     uuid.NewString(),
		Summaries: summaries,
	})
}

type capacityMatrixRequest struct {
	MaxPerLevel int    `json:"max_per_level,omitempty"`
	Scenario    string `json:"scenario,omitempty"`
}

func (s *server) handleCapacityMatrix(w http.ResponseWriter, r *http.Request) {
	var req capacityMatrixRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxPerLevel == 0 {
		req.MaxPerLevel = 5
	}
	if req.MaxPerLevel < 0 || req.MaxPerLevel > 10 {
		respondError(w, http.StatusBadRequest, "max_per_level must be within 1-10")
		return
	}
	scenario, err := parseScenario(req.Scenario)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	entries, err := s.planner.CapacityMatrix(req.MaxPerLevel, scenario)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

type optimalCrewSizeRequest struct {
	Targets  []float64 `json:"targets,omitempty"`
	Scenario string    `json:"scenario,omitempty"`
}

func (s *server) handleOptimalCrewSize(w http.ResponseWriter, r *http.Request) {
	var req optimalCrewSizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	scenario, err := parseScenario(req.Scenario)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Targets) == 0 {
		req.Targets = []float64{1200000, 1500000, 1800000}
	}
	for _, target := range req.Targets {
		if target <= 0 {
			respondError(w, http.StatusBadRequest, "targets must be positive")
			return
		}
	}

	s.mu.RLock()
	result, err := s.planner.OptimalCrewSizes(req.Targets, scenario)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type sensitivityRequest struct {
	Composition workforce.CrewComposition `json:"composition"`
}

func (s *server) handleSensitivityAnalysis(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	result, err := s.planner.Sensitivity(req.Composition)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (s *server) handleCrewEfficiency(w http.ResponseWriter, r *http.Request) {
	scenario, err := parseScenario(r.URL.Query().Get("scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	entries, err := s.planner.CrewEfficiency(scenario)
	s.mu.RUnlock()

	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}
