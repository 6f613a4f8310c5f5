package workforce

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigUpdate carries whole-record replacements per configuration section.
// Nil or absent sections are left untouched; there is no field-level patching.
// Season, level, and scenario keys must already exist in the configuration —
// the planning year always has four seasons, four tiers, three scenarios.
type ConfigUpdate struct {
	Seasons          map[string]SeasonConfig      `json:"seasons,omitempty"`
	ExperienceLevels map[string]ExperienceLevel   `json:"experience_levels,omitempty"`
	SlidingScale     *SlidingScaleConfig          `json:"sliding_scale,omitempty"`
	LaborConfig      *LaborCostConfig             `json:"labor_config,omitempty"`
	RevenueScenarios map[Scenario]RevenueScenario `json:"revenue_scenarios,omitempty"`
}

// ApplyUpdate validates every section of the update and then replaces the
// matching records. Validation failures leave the configuration untouched.
func (p *Planner) ApplyUpdate(u ConfigUpdate) error {
	for key, season := range u.Seasons {
		if _, ok := p.cfg.Seasons[key]; !ok {
			return fmt.Errorf("%w: unknown season %q", ErrInvalidConfig, key)
		}
		if err := validateSeason(key, season); err != nil {
			return err
		}
	}
	for key, level := range u.ExperienceLevels {
		if _, ok := p.cfg.ExperienceLevels[key]; !ok {
			return fmt.Errorf("%w: unknown experience level %q", ErrInvalidConfig, key)
		}
		if err := validateLevel(key, level); err != nil {
			return err
		}
	}
	if u.SlidingScale != nil {
		if err := validateSlidingScale(*u.SlidingScale); err != nil {
			return err
		}
	}
	if u.LaborConfig != nil {
		if err := validateLaborConfig(*u.LaborConfig); err != nil {
			return err
		}
	}
	for key := range u.RevenueScenarios {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown scenario %q", ErrInvalidConfig, key)
		}
	}

	for key, season := range u.Seasons {
		p.cfg.Seasons[key] = season
	}
	for key, level := range u.ExperienceLevels {
		p.cfg.ExperienceLevels[key] = level
	}
	if u.SlidingScale != nil {
		scale := *u.SlidingScale
		scale.Thresholds = append([]ScaleThreshold(nil), scale.Thresholds...)
		p.cfg.SlidingScale = scale
	}
	if u.LaborConfig != nil {
		p.cfg.LaborConfig = *u.LaborConfig
	}
	for key, scenario := range u.RevenueScenarios {
		p.cfg.RevenueScenarios[key] = scenario
	}
	return nil
}

// Replace swaps in an entire configuration after validating it.
func (p *Planner) Replace(cfg Config) error {
	for key, season := range cfg.Seasons {
		if err := validateSeason(key, season); err != nil {
			return err
		}
	}
	for key, level := range cfg.ExperienceLevels {
		if err := validateLevel(key, level); err != nil {
			return err
		}
	}
	if err := validateSlidingScale(cfg.SlidingScale); err != nil {
		return err
	}
	if err := validateLaborConfig(cfg.LaborConfig); err != nil {
		return err
	}
	p.cfg = cfg.Clone()
	return nil
}

func validateSeason(key string, s SeasonConfig) error {
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("%w: season %q ends before it starts", ErrInvalidConfig, key)
	}
	if s.WorkingDaysPerWeek < 0 || s.WorkingDaysPerWeek > 7 {
		return fmt.Errorf("%w: season %q working days per week must be within 0-7", ErrInvalidConfig, key)
	}
	return nil
}

func validateLevel(key string, l ExperienceLevel) error {
	if l.PerDiemRate < 0 {
		return fmt.Errorf("%w: level %q per-diem rate must not be negative", ErrInvalidConfig, key)
	}
	r := l.RevenueRange
	if r.Min > r.Base || r.Base > r.Max {
		return fmt.Errorf("%w: level %q revenue range must satisfy min <= base <= max", ErrInvalidConfig, key)
	}
	return nil
}

func validateSlidingScale(s SlidingScaleConfig) error {
	if s.BasePercentage < 0 || s.MaxPercentage < s.BasePercentage {
		return fmt.Errorf("%w: sliding scale percentages out of order", ErrInvalidConfig)
	}
	for i := 1; i < len(s.Thresholds); i++ {
		if s.Thresholds[i].Ratio <= s.Thresholds[i-1].Ratio {
			return fmt.Errorf("%w: sliding scale thresholds must ascend by ratio", ErrInvalidConfig)
		}
		if s.Thresholds[i].Percentage < s.Thresholds[i-1].Percentage {
			return fmt.Errorf("%w: sliding scale percentages must not decrease", ErrInvalidConfig)
		}
	}
	return nil
}

func validateLaborConfig(l LaborCostConfig) error {
	if l.JuniorHourlyRateMin > l.JuniorHourlyRateMax {
		return fmt.Errorf("%w: junior hourly rate min exceeds max", ErrInvalidConfig)
	}
	if l.HoursPerDay < 0 || l.HoursPerDay > 24 {
		return fmt.Errorf("%w: hours per day must be within 0-24", ErrInvalidConfig)
	}
	return nil
}
