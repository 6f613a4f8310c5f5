// Package workforce computes capacity, compensation, and revenue projections
// for seasonal install-crew staffing. All calculators are pure functions of an
// injected configuration snapshot; the package performs no I/O.
package workforce

import "time"

// Season keys. A planning year has exactly these four seasons.
const (
	SeasonPre  = "pre_season"
	SeasonIn   = "in_season"
	SeasonPost = "post_season"
	SeasonOff  = "off_season"
)

// Experience level keys, ordered from cheapest to most expensive tier.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// LevelKeys returns the experience level keys in canonical tier order.
func LevelKeys() []string {
	return []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

// SeasonKeys returns the season keys in calendar order.
func SeasonKeys() []string {
	return []string{SeasonPre, SeasonIn, SeasonPost, SeasonOff}
}

// SeasonConfig describes one seasonal period of the planning year.
type SeasonConfig struct {
	Name               string  `json:"name"`
	StartDate          Date    `json:"start_date"`
	EndDate            Date    `json:"end_date"`
	WorkingDaysPerWeek float64 `json:"working_days_per_week"`
	ProductionEligible bool    `json:"production_eligible"`
}

// RevenueRange bounds the daily revenue an experience level is expected to
// produce. Invariant: Min <= Base <= Max.
type RevenueRange struct {
	Min  float64 `json:"min"`
	Base float64 `json:"base"`
	Max  float64 `json:"max"`
}

// ExperienceLevel is the rate table entry for one crew-leader tier.
type ExperienceLevel struct {
	Name         string       `json:"name"`
	PerDiemRate  float64      `json:"per_diem_rate"`
	RevenueRange RevenueRange `json:"revenue_range"`
}

// ScaleThreshold is one step of the production bonus sliding scale.
type ScaleThreshold struct {
	Ratio      float64 `json:"ratio"`
	Percentage float64 `json:"percentage"`
}

// SlidingScaleConfig maps performance ratio to bonus percentage as a step
// function. Thresholds are ordered ascending by ratio with non-decreasing
// percentages.
type SlidingScaleConfig struct {
	BasePercentage float64          `json:"base_percentage"`
	MaxPercentage  float64          `json:"max_percentage"`
	Thresholds     []ScaleThreshold `json:"thresholds"`
}

// LaborCostConfig holds labor cost assumptions. PayrollTaxRate is
// informational only; aggregation does not apply it.
type LaborCostConfig struct {
	TotalLaborPercentage float64 `json:"total_labor_percentage"`
	JuniorHourlyRateMin  float64 `json:"junior_hourly_rate_min"`
	JuniorHourlyRateMax  float64 `json:"junior_hourly_rate_max"`
	HoursPerDay          float64 `json:"hours_per_day"`
	PayrollTaxRate       float64 `json:"payroll_tax_rate"`
}

// CrewComposition counts crews per experience tier. A crew is one tier leader
// plus implied junior support.
type CrewComposition struct {
	BeginnerCrews     int `json:"beginner_crews"`
	IntermediateCrews int `json:"intermediate_crews"`
	AdvancedCrews     int `json:"advanced_crews"`
	ExpertCrews       int `json:"expert_crews"`
}

// Total returns the crew count across all tiers.
func (c CrewComposition) Total() int {
	return c.BeginnerCrews + c.IntermediateCrews + c.AdvancedCrews + c.ExpertCrews
}

// Count returns the crew count for one tier key, 0 for unknown keys.
func (c CrewComposition) Count(level string) int {
	switch level {
	case LevelBeginner:
		return c.BeginnerCrews
	case LevelIntermediate:
		return c.IntermediateCrews
	case LevelAdvanced:
		return c.AdvancedCrews
	case LevelExpert:
		return c.ExpertCrews
	}
	return 0
}

// RevenueScenario names a target seasonal revenue assumption.
type RevenueScenario struct {
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"total_revenue"`
	Description  string  `json:"description"`
}

// Config is the full planning configuration. It is owned by a single Planner
// and mutated only through whole-record section replacement.
type Config struct {
	Seasons          map[string]SeasonConfig      `json:"seasons"`
	ExperienceLevels map[string]ExperienceLevel   `json:"experience_levels"`
	SlidingScale     SlidingScaleConfig           `json:"sliding_scale"`
	LaborConfig      LaborCostConfig              `json:"labor_config"`
	RevenueScenarios map[Scenario]RevenueScenario `json:"revenue_scenarios"`
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.Seasons = make(map[string]SeasonConfig, len(c.Seasons))
	for k, v := range c.Seasons {
		out.Seasons[k] = v
	}
	out.ExperienceLevels = make(map[string]ExperienceLevel, len(c.ExperienceLevels))
	for k, v := range c.ExperienceLevels {
		out.ExperienceLevels[k] = v
	}
	out.RevenueScenarios = make(map[Scenario]RevenueScenario, len(c.RevenueScenarios))
	for k, v := range c.RevenueScenarios {
		out.RevenueScenarios[k] = v
	}
	out.SlidingScale.Thresholds = append([]ScaleThreshold(nil), c.SlidingScale.Thresholds...)
	return out
}

// DefaultConfig returns the stock 2025-26 planning configuration.
func DefaultConfig() Config {
	return Config{
		Seasons: map[string]SeasonConfig{
			SeasonPre: {
				Name:               "Pre-Season",
				StartDate:          NewDate(2025, time.August, 18),
				EndDate:            NewDate(2025, time.September, 28),
				WorkingDaysPerWeek: 5.0,
			},
			SeasonIn: {
				Name:               "In-Season",
				StartDate:          NewDate(2025, time.September, 29),
				EndDate:            NewDate(2025, time.December, 7),
				WorkingDaysPerWeek: 6.0,
				ProductionEligible: true,
			},
			SeasonPost: {
				Name:               "Post-Season",
				StartDate:          NewDate(2025, time.December, 8),
				EndDate:            NewDate(2026, time.February, 1),
				WorkingDaysPerWeek: 5.0,
			},
			SeasonOff: {
				Name:               "Off-Season",
				StartDate:          NewDate(2026, time.February, 2),
				EndDate:            NewDate(2026, time.March, 1),
				WorkingDaysPerWeek: 4.0,
			},
		},
		ExperienceLevels: map[string]ExperienceLevel{
			LevelBeginner: {
				Name:         "Beginner",
				PerDiemRate:  200,
				RevenueRange: RevenueRange{Min: 2500, Base: 3250, Max: 4000},
			},
			LevelIntermediate: {
				Name:         "Intermediate",
				PerDiemRate:  225,
				RevenueRange: RevenueRange{Min: 4000, Base: 4750, Max: 5500},
			},
			LevelAdvanced: {
				Name:         "Advanced",
				PerDiemRate:  275,
				RevenueRange: RevenueRange{Min: 5500, Base: 6250, Max: 7000},
			},
			LevelExpert: {
				Name:         "Expert",
				PerDiemRate:  300,
				RevenueRange: RevenueRange{Min: 7000, Base: 7750, Max: 8500},
			},
		},
		SlidingScale: SlidingScaleConfig{
			BasePercentage: 0.10,
			MaxPercentage:  0.15,
			Thresholds: []ScaleThreshold{
				{Ratio: 1.0, Percentage: 0.10},
				{Ratio: 1.1, Percentage: 0.11},
				{Ratio: 1.2, Percentage: 0.12},
				{Ratio: 1.3, Percentage: 0.13},
				{Ratio: 1.4, Percentage: 0.14},
				{Ratio: 1.5, Percentage: 0.15},
			},
		},
		LaborConfig: LaborCostConfig{
			TotalLaborPercentage: 0.20,
			JuniorHourlyRateMin:  18,
			JuniorHourlyRateMax:  25,
			HoursPerDay:          12,
			PayrollTaxRate:       0.15,
		},
		RevenueScenarios: map[Scenario]RevenueScenario{
			WorstCase: {
				Name:         "Worst Case",
				TotalRevenue: 1200000,
				Description:  "Conservative scenario with market challenges",
			},
			BaseCase: {
				Name:         "Base Case",
				TotalRevenue: 1500000,
				Description:  "Expected performance scenario",
			},
			BestCase: {
				Name:         "Best Case",
				TotalRevenue: 1800000,
				Description:  "Optimistic scenario with strong market conditions",
			},
		},
	}
}

// Planner evaluates the workforce calculators against an owned configuration
// snapshot. Readers may share a Planner; writers must serialize externally
// (single-writer assumption).
type Planner struct {
	cfg Config
}

// NewPlanner returns a Planner owning the given configuration.
func NewPlanner(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// NewDefaultPlanner returns a Planner with the stock configuration.
func NewDefaultPlanner() *Planner {
	return NewPlanner(DefaultConfig())
}

// Export returns a deep copy of the current configuration.
func (p *Planner) Export() Config {
	return p.cfg.Clone()
}
