package workforce

import "errors"

// ErrNoCrews is returned when a capacity calculation receives a composition
// with no crews at all. Callers must check for it before reading the result.
var ErrNoCrews = errors.New("no crews specified")

// LevelCapacity is the per-tier slice of a capacity result.
type LevelCapacity struct {
	CrewCount              int     `json:"crew_count"`
	DailyRevenuePerCrew    float64 `json:"daily_revenue_per_crew"`
	TotalDailyRevenue      float64 `json:"total_daily_revenue"`
	CrewLeaderCompensation float64 `json:"crew_leader_compensation"`
	JuniorInstallerCost    float64 `json:"junior_installer_cost"`
	TotalCrewCost          float64 `json:"total_crew_cost"`
}

// CapacityResult aggregates revenue capacity and labor cost across a crew
// composition.
type CapacityResult struct {
	Scenario             Scenario                 `json:"scenario"`
	TotalCrews           int                      `json:"total_crews"`
	TotalDailyCapacity   float64                  `json:"total_daily_capacity"`
	TotalSeasonalRevenue float64                  `json:"total_seasonal_revenue"`
	TotalLaborCost       float64                  `json:"total_labor_cost"`
	LaborPercentage      float64                  `json:"labor_percentage"`
	CapacityByLevel      map[string]LevelCapacity `json:"capacity_by_level"`
	InSeasonDays         int                      `json:"in_season_days"`
}

// Capacity sums compensation and junior-labor cost across a crew composition.
// Leader compensation uses a fixed 1.0 performance multiplier; junior cost is
// a flat per-crew daily figure at the minimum junior rate.
func (p *Planner) Capacity(comp CrewComposition, scenario Scenario) (CapacityResult, error) {
	if comp.Total() == 0 {
		return CapacityResult{}, ErrNoCrews
	}

	byLevel := make(map[string]LevelCapacity, 4)
	totalDailyCapacity := 0.0
	totalLaborCost := 0.0

	for _, level := range LevelKeys() {
		count := comp.Count(level)
		if count == 0 {
			continue
		}

		leader, err := p.Compensation(level, scenario, 1.0)
		if err != nil {
			return CapacityResult{}, err
		}

		dailyCapacity := leader.DailyRevenue * float64(count)
		totalDailyCapacity += dailyCapacity

		juniorCostPerCrew := p.cfg.LaborConfig.JuniorHourlyRateMin * p.cfg.LaborConfig.HoursPerDay
		juniorCost := juniorCostPerCrew * float64(count)

		entry := LevelCapacity{
			CrewCount:              count,
			DailyRevenuePerCrew:    leader.DailyRevenue,
			TotalDailyRevenue:      dailyCapacity,
			CrewLeaderCompensation: leader.TotalCompensation,
			JuniorInstallerCost:    juniorCost,
			TotalCrewCost:          leader.TotalCompensation + juniorCost,
		}
		byLevel[level] = entry
		totalLaborCost += entry.TotalCrewCost
	}

	inSeasonDays := p.InSeasonDays()
	totalSeasonalRevenue := totalDailyCapacity * float64(inSeasonDays)

	laborPct := 0.0
	if totalSeasonalRevenue > 0 {
		laborPct = totalLaborCost / totalSeasonalRevenue * 100
	}

	return CapacityResult{
		Scenario:             scenario,
		TotalCrews:           comp.Total(),
		TotalDailyCapacity:   totalDailyCapacity,
		TotalSeasonalRevenue: totalSeasonalRevenue,
		TotalLaborCost:       totalLaborCost,
		LaborPercentage:      laborPct,
		CapacityByLevel:      byLevel,
		InSeasonDays:         inSeasonDays,
	}, nil
}
