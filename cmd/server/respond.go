package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/peakseason/planner/internal/installers"
	"github.com/peakseason/planner/internal/workforce"
)

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// decodeJSON decodes a request body strictly: unknown fields are an error so
// typo'd section names cannot silently no-op.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// respondDomainError maps domain sentinel errors to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, installers.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workforce.ErrUnknownLevel),
		errors.Is(err, workforce.ErrUnknownScenario),
		errors.Is(err, workforce.ErrNoCrews),
		errors.Is(err, workforce.ErrInvalidConfig):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseScenario accepts both the canonical scenario names and the legacy
// short keys. An empty value means the base case.
func parseScenario(raw string) (workforce.Scenario, error) {
	if raw == "" {
		return workforce.BaseCase, nil
	}
	if s, err := workforce.ParseScenario(raw); err == nil {
		return s, nil
	}
	return workforce.ScenarioFromLegacyKey(raw)
}
