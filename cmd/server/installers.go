package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/peakseason/planner/internal/installers"
)

type installerCreateRequest struct {
	Name            string   `json:"name"`
	ExperienceLevel string   `json:"experience_level"`
	CommittedDays   []string `json:"committed_days,omitempty"`
}

func (s *server) handleInstallersCreate(w http.ResponseWriter, r *http.Request) {
	var req installerCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !s.validInstallerLevel(req.ExperienceLevel) {
		respondError(w, http.StatusBadRequest, "unknown experience level")
		return
	}

	inst, err := s.store.Add(req.Name, req.ExperienceLevel, req.CommittedDays)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusCreated, inst)
}

func (s *server) handleInstallersList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListActive()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"installers": list,
		"count":      len(list),
	})
}

func (s *server) handleInstallersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := installerID(w, r)
	if !ok {
		return
	}

	inst, err := s.store.Get(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, inst)
}

func (s *server) handleInstallersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := installerID(w, r)
	if !ok {
		return
	}

	var update installers.InstallerUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.ExperienceLevel != nil && !s.validInstallerLevel(*update.ExperienceLevel) {
		respondError(w, http.StatusBadRequest, "unknown experience level")
		return
	}

	inst, err := s.store.Update(id, update)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, inst)
}

// DELETE soft-deletes by default; ?permanent=true removes the record.
func (s *server) handleInstallersDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := installerID(w, r)
	if !ok {
		return
	}

	var err error
	if r.URL.Query().Get("permanent") == "true" {
		err = s.store.Delete(id)
	} else {
		err = s.store.Remove(id)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"id": id})
}

func (s *server) handleInstallersByExperience(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	if !s.validInstallerLevel(level) {
		respondError(w, http.StatusBadRequest, "unknown experience level")
		return
	}

	list, err := s.store.ListByExperience(level)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"installers": list,
		"count":      len(list),
	})
}

func (s *server) handleInstallersRevenueSummary(w http.ResponseWriter, r *http.Request) {
	scenario, err := parseScenario(r.URL.Query().Get("scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.tracker.TotalCommitted(scenario)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}

// Remaining capacity defaults its target to the stored revenue goal for the
// requested scenario; an explicit target query overrides it.
func (s *server) handleInstallersRemainingCapacity(w http.ResponseWriter, r *http.Request) {
	scenario, err := parseScenario(r.URL.Query().Get("scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var target float64
	if raw := r.URL.Query().Get("target"); raw != "" {
		target, err = strconv.ParseFloat(raw, 64)
		if err != nil || target <= 0 {
			respondError(w, http.StatusBadRequest, "target must be a positive number")
			return
		}
	} else {
		goals, err := s.getRevenueGoals()
		if err != nil {
			respondDomainError(w, err)
			return
		}
		target = goals.forScenario(scenario)
	}

	remaining, err := s.tracker.Remaining(target, scenario)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, remaining)
}

func (s *server) handleInstallersRecruitment(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	if !s.validInstallerLevel(level) {
		respondError(w, http.StatusBadRequest, "unknown experience level")
		return
	}

	days := 60
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	presentation, err := s.tracker.RecruitmentPresentation(level, days)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, presentation)
}

func (s *server) validInstallerLevel(level string) bool {
	_, ok := s.tracker.RevenueRanges()[level]
	return ok
}

func installerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid installer id")
		return 0, false
	}
	return id, true
}
