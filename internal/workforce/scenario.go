package workforce

import (
	"errors"
	"fmt"
)

// Scenario selects which band of an experience level's revenue range drives
// daily revenue. The canonical keys are the long forms; the installer
// tracking records predate them and use short keys, see LegacyKey.
type Scenario string

const (
	WorstCase Scenario = "worst_case"
	BaseCase  Scenario = "base_case"
	BestCase  Scenario = "best_case"
)

// ErrUnknownScenario reports a scenario key outside the canonical set.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenarios returns all scenarios in worst-to-best order.
func Scenarios() []Scenario {
	return []Scenario{WorstCase, BaseCase, BestCase}
}

// ParseScenario validates a canonical scenario key.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case WorstCase, BaseCase, BestCase:
		return Scenario(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScenario, s)
}

// legacyKeys is the explicit mapping between the canonical scenario keys and
// the short keys used by the older installer tracking records.
var legacyKeys = map[Scenario]string{
	WorstCase: "worst",
	BaseCase:  "base",
	BestCase:  "best",
}

// LegacyKey returns the short key used by the installer tracking records.
func (s Scenario) LegacyKey() string {
	return legacyKeys[s]
}

// ScenarioFromLegacyKey maps a short installer-tracking key to the canonical
// scenario.
func ScenarioFromLegacyKey(key string) (Scenario, error) {
	for s, legacy := range legacyKeys {
		if legacy == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: legacy key %q", ErrUnknownScenario, key)
}

// Select picks the revenue band matching the scenario: worst maps to the
// range minimum, base to the base, best to the maximum.
func (s Scenario) Select(r RevenueRange) float64 {
	switch s {
	case WorstCase:
		return r.Min
	case BestCase:
		return r.Max
	default:
		return r.Base
	}
}

// Valid reports whether s is one of the canonical scenarios.
func (s Scenario) Valid() bool {
	_, ok := legacyKeys[s]
	return ok
}
