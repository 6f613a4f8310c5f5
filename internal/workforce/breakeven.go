package workforce

import "fmt"

// BreakEvenResult reports the revenue level at which base-rate production
// bonus alone would cover guaranteed per-diem cost.
type BreakEvenResult struct {
	ExperienceLevel       string  `json:"experience_level"`
	TotalPerDiem          float64 `json:"total_per_diem"`
	BreakEvenRevenue      float64 `json:"break_even_revenue"`
	BreakEvenDailyRevenue float64 `json:"break_even_daily_revenue"`
	InSeasonDays          int     `json:"in_season_days"`
	BaseBonusPercentage   float64 `json:"base_bonus_percentage"`
}

// BreakEven derives the seasonal and daily production revenue at which the
// base-percentage bonus equals total per-diem across all seasons.
func (p *Planner) BreakEven(level string) (BreakEvenResult, error) {
	exp, ok := p.cfg.ExperienceLevels[level]
	if !ok {
		return BreakEvenResult{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	totalPerDiem := float64(p.TotalWorkingDays()) * exp.PerDiemRate

	breakEvenRevenue := 0.0
	if p.cfg.SlidingScale.BasePercentage > 0 {
		breakEvenRevenue = totalPerDiem / p.cfg.SlidingScale.BasePercentage
	}

	inSeasonDays := p.InSeasonDays()
	breakEvenDaily := 0.0
	if inSeasonDays > 0 {
		breakEvenDaily = breakEvenRevenue / float64(inSeasonDays)
	}

	return BreakEvenResult{
		ExperienceLevel:       level,
		TotalPerDiem:          totalPerDiem,
		BreakEvenRevenue:      breakEvenRevenue,
		BreakEvenDailyRevenue: breakEvenDaily,
		InSeasonDays:          inSeasonDays,
		BaseBonusPercentage:   p.cfg.SlidingScale.BasePercentage,
	}, nil
}

// AllBreakEven evaluates the break-even analysis for every experience level.
func (p *Planner) AllBreakEven() map[string]BreakEvenResult {
	out := make(map[string]BreakEvenResult, len(p.cfg.ExperienceLevels))
	for level := range p.cfg.ExperienceLevels {
		result, err := p.BreakEven(level)
		if err != nil {
			continue
		}
		out[level] = result
	}
	return out
}
