package workforce

import (
	"errors"
	"fmt"
)

// ErrUnknownLevel reports an experience level key with no rate table entry.
var ErrUnknownLevel = errors.New("unknown experience level")

// SeasonBreakdown is the per-season slice of a compensation result.
type SeasonBreakdown struct {
	WorkingDays        int     `json:"working_days"`
	PerDiemTotal       float64 `json:"per_diem_total"`
	ProductionEligible bool    `json:"production_eligible"`
}

// CompensationResult is the full crew-leader pay picture for one experience
// level under one scenario.
type CompensationResult struct {
	ExperienceLevel        string                     `json:"experience_level"`
	Scenario               Scenario                   `json:"scenario"`
	PerformanceMultiplier  float64                    `json:"performance_multiplier"`
	DailyRevenue           float64                    `json:"daily_revenue"`
	TotalWorkingDays       int                        `json:"total_working_days"`
	TotalPerDiem           float64                    `json:"total_per_diem"`
	TotalProductionRevenue float64                    `json:"total_production_revenue"`
	BonusPercentage        float64                    `json:"bonus_percentage"`
	ProductionBonus        float64                    `json:"production_bonus"`
	BonusPayment           float64                    `json:"bonus_payment"`
	TotalCompensation      float64                    `json:"total_compensation"`
	ImplicitHourlyRate     float64                    `json:"implicit_hourly_rate"`
	SeasonalBreakdown      map[string]SeasonBreakdown `json:"seasonal_breakdown"`
}

// Compensation computes a crew leader's seasonal pay. Production revenue is
// attributed only to production-eligible seasons; the bonus is paid solely on
// top of guaranteed per-diem and is never negative.
func (p *Planner) Compensation(level string, scenario Scenario, multiplier float64) (CompensationResult, error) {
	exp, ok := p.cfg.ExperienceLevels[level]
	if !ok {
		return CompensationResult{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	if !scenario.Valid() {
		return CompensationResult{}, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}

	totalWorkingDays := 0
	inSeasonDays := 0
	totalPerDiem := 0.0
	breakdown := make(map[string]SeasonBreakdown, len(p.cfg.Seasons))
	for key, season := range p.cfg.Seasons {
		days := WorkingDays(season)
		totalWorkingDays += days
		perDiem := float64(days) * exp.PerDiemRate
		totalPerDiem += perDiem
		if season.ProductionEligible {
			inSeasonDays += days
		}
		breakdown[key] = SeasonBreakdown{
			WorkingDays:        days,
			PerDiemTotal:       perDiem,
			ProductionEligible: season.ProductionEligible,
		}
	}

	dailyRevenue := scenario.Select(exp.RevenueRange) * multiplier
	totalProductionRevenue := dailyRevenue * float64(inSeasonDays)

	ratio := 0.0
	if exp.RevenueRange.Base > 0 {
		ratio = dailyRevenue / exp.RevenueRange.Base
	}
	bonusPct := p.bonusPercentage(ratio)
	productionBonus := totalProductionRevenue * bonusPct

	bonusPayment := productionBonus - totalPerDiem
	if bonusPayment < 0 {
		bonusPayment = 0
	}
	totalCompensation := totalPerDiem + bonusPayment

	implicitHourly := 0.0
	if hours := float64(totalWorkingDays) * p.cfg.LaborConfig.HoursPerDay; hours > 0 {
		implicitHourly = totalCompensation / hours
	}

	return CompensationResult{
		ExperienceLevel:        level,
		Scenario:               scenario,
		PerformanceMultiplier:  multiplier,
		DailyRevenue:           dailyRevenue,
		TotalWorkingDays:       totalWorkingDays,
		TotalPerDiem:           totalPerDiem,
		TotalProductionRevenue: totalProductionRevenue,
		BonusPercentage:        bonusPct,
		ProductionBonus:        productionBonus,
		BonusPayment:           bonusPayment,
		TotalCompensation:      totalCompensation,
		ImplicitHourlyRate:     implicitHourly,
		SeasonalBreakdown:      breakdown,
	}, nil
}

// bonusPercentage resolves the sliding scale: scan thresholds from highest to
// lowest and take the first one at or below the performance ratio. It is a
// step function; the highest satisfied threshold wins. Below every threshold
// the base percentage applies.
func (p *Planner) bonusPercentage(ratio float64) float64 {
	thresholds := p.cfg.SlidingScale.Thresholds
	for i := len(thresholds) - 1; i >= 0; i-- {
		if ratio >= thresholds[i].Ratio {
			return thresholds[i].Percentage
		}
	}
	return p.cfg.SlidingScale.BasePercentage
}

// AllCompensation evaluates every experience level under every scenario at a
// shared performance multiplier.
func (p *Planner) AllCompensation(multiplier float64) (map[string]map[Scenario]CompensationResult, error) {
	out := make(map[string]map[Scenario]CompensationResult, len(p.cfg.ExperienceLevels))
	for level := range p.cfg.ExperienceLevels {
		out[level] = make(map[Scenario]CompensationResult, 3)
		for _, scenario := range Scenarios() {
			result, err := p.Compensation(level, scenario, multiplier)
			if err != nil {
				return nil, err
			}
			out[level][scenario] = result
		}
	}
	return out, nil
}
