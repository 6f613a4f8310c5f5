package workforce

import (
	"fmt"
	"math"
	"sort"
)

// Cost assumptions used by the financial summary: material and operating
// costs are estimated as flat revenue shares.
const (
	materialCostShare  = 0.30
	operatingCostShare = 0.25
)

// NamedComposition pairs a crew composition with a display label for
// comparison output.
type NamedComposition struct {
	Name string `json:"name"`
	CrewComposition
}

// CompareScenarios evaluates each composition under each scenario. Any
// invalid composition or scenario fails the whole comparison.
func (p *Planner) CompareScenarios(compositions []NamedComposition, scenarios []Scenario) (map[string]map[Scenario]CapacityResult, error) {
	if len(scenarios) == 0 {
		scenarios = Scenarios()
	}
	out := make(map[string]map[Scenario]CapacityResult, len(compositions))
	for i, comp := range compositions {
		name := comp.Name
		if name == "" {
			name = fmt.Sprintf("Composition %d", i+1)
		}
		out[name] = make(map[Scenario]CapacityResult, len(scenarios))
		for _, scenario := range scenarios {
			capacity, err := p.Capacity(comp.CrewComposition, scenario)
			if err != nil {
				return nil, fmt.Errorf("composition %q: %w", name, err)
			}
			out[name][scenario] = capacity
		}
	}
	return out, nil
}

// FinancialSummary extends a capacity result with estimated margins.
type FinancialSummary struct {
	CapacityResult
	MaterialCost   float64 `json:"material_cost"`
	DirectCosts    float64 `json:"direct_costs"`
	GrossProfit    float64 `json:"gross_profit"`
	GrossMargin    float64 `json:"gross_margin"`
	OperatingCosts float64 `json:"operating_costs"`
	NetProfit      float64 `json:"net_profit"`
	NetMargin      float64 `json:"net_margin"`
}

// FinancialSummaries evaluates a composition under every scenario and layers
// gross and net margin estimates on top of the capacity aggregates.
func (p *Planner) FinancialSummaries(comp CrewComposition) (map[Scenario]FinancialSummary, error) {
	out := make(map[Scenario]FinancialSummary, 3)
	for _, scenario := range Scenarios() {
		capacity, err := p.Capacity(comp, scenario)
		if err != nil {
			return nil, err
		}

		revenue := capacity.TotalSeasonalRevenue
		materialCost := revenue * materialCostShare
		directCosts := capacity.TotalLaborCost + materialCost
		grossProfit := revenue - directCosts
		operatingCosts := revenue * operatingCostShare
		netProfit := grossProfit - operatingCosts

		grossMargin, netMargin := 0.0, 0.0
		if revenue > 0 {
			grossMargin = grossProfit / revenue * 100
			netMargin = netProfit / revenue * 100
		}

		out[scenario] = FinancialSummary{
			CapacityResult: capacity,
			MaterialCost:   materialCost,
			DirectCosts:    directCosts,
			GrossProfit:    grossProfit,
			GrossMargin:    grossMargin,
			OperatingCosts: operatingCosts,
			NetProfit:      netProfit,
			NetMargin:      netMargin,
		}
	}
	return out, nil
}

// RecruitmentScenario is one compensation projection shown to a recruit,
// extended with the bi-weekly guaranteed pay figure.
type RecruitmentScenario struct {
	CompensationResult
	BiWeeklyPerDiem float64 `json:"bi_weekly_per_diem"`
}

// RecruitmentData bundles everything shown during a recruiting conversation
// for one tier.
type RecruitmentData struct {
	Scenarios        map[Scenario]RecruitmentScenario `json:"scenarios"`
	BreakEven        BreakEvenResult                  `json:"break_even"`
	ExperienceConfig ExperienceLevel                  `json:"experience_config"`
}

// recruitmentMultipliers pairs the scenario shown with the performance
// multiplier assumed for it.
var recruitmentMultipliers = map[Scenario]float64{
	WorstCase: 0.8,
	BaseCase:  1.0,
	BestCase:  1.2,
}

// Recruitment builds compensation projections for one experience level at
// worst/base/best performance plus the break-even analysis.
func (p *Planner) Recruitment(level string) (RecruitmentData, error) {
	exp, ok := p.cfg.ExperienceLevels[level]
	if !ok {
		return RecruitmentData{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	scenarios := make(map[Scenario]RecruitmentScenario, 3)
	for scenario, multiplier := range recruitmentMultipliers {
		comp, err := p.Compensation(level, scenario, multiplier)
		if err != nil {
			return RecruitmentData{}, err
		}

		// Bi-weekly guaranteed pay assumes a five-day pay week.
		biWeekly := 0.0
		if periods := float64(comp.TotalWorkingDays) / 5 / 2; periods > 0 {
			biWeekly = comp.TotalPerDiem / periods
		}

		scenarios[scenario] = RecruitmentScenario{
			CompensationResult: comp,
			BiWeeklyPerDiem:    biWeekly,
		}
	}

	breakEven, err := p.BreakEven(level)
	if err != nil {
		return RecruitmentData{}, err
	}

	return RecruitmentData{
		Scenarios:        scenarios,
		BreakEven:        breakEven,
		ExperienceConfig: exp,
	}, nil
}

// MatrixEntry is one row of the capacity matrix.
type MatrixEntry struct {
	ExpertCrews       int     `json:"expert_crews"`
	AdvancedCrews     int     `json:"advanced_crews"`
	IntermediateCrews int     `json:"intermediate_crews"`
	BeginnerCrews     int     `json:"beginner_crews"`
	TotalCrews        int     `json:"total_crews"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalLaborCost    float64 `json:"total_labor_cost"`
	LaborPercentage   float64 `json:"labor_percentage"`
	DailyCapacity     float64 `json:"daily_capacity"`
	EfficiencyScore   float64 `json:"efficiency_score"`
}

const (
	matrixMaxTotalCrews = 10
	matrixResultCap     = 50
)

// CapacityMatrix enumerates every composition with up to maxPerLevel crews
// per tier (total capped at ten crews), sorted by efficiency descending and
// truncated to the top fifty.
func (p *Planner) CapacityMatrix(maxPerLevel int, scenario Scenario) ([]MatrixEntry, error) {
	if !scenario.Valid() {
		return nil, ErrUnknownScenario
	}

	var entries []MatrixEntry
	for expert := 0; expert <= maxPerLevel; expert++ {
		for advanced := 0; advanced <= maxPerLevel; advanced++ {
			for intermediate := 0; intermediate <= maxPerLevel; intermediate++ {
				for beginner := 0; beginner <= maxPerLevel; beginner++ {
					total := expert + advanced + intermediate + beginner
					if total == 0 || total > matrixMaxTotalCrews {
						continue
					}

					capacity, err := p.Capacity(CrewComposition{
						ExpertCrews:       expert,
						AdvancedCrews:     advanced,
						IntermediateCrews: intermediate,
						BeginnerCrews:     beginner,
					}, scenario)
					if err != nil {
						continue
					}

					efficiency := 0.0
					if capacity.TotalLaborCost > 0 {
						efficiency = capacity.TotalSeasonalRevenue / capacity.TotalLaborCost
					}
					entries = append(entries, MatrixEntry{
						ExpertCrews:       expert,
						AdvancedCrews:     advanced,
						IntermediateCrews: intermediate,
						BeginnerCrews:     beginner,
						TotalCrews:        total,
						TotalRevenue:      capacity.TotalSeasonalRevenue,
						TotalLaborCost:    capacity.TotalLaborCost,
						LaborPercentage:   capacity.LaborPercentage,
						DailyCapacity:     capacity.TotalDailyCapacity,
						EfficiencyScore:   efficiency,
					})
				}
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EfficiencyScore > entries[j].EfficiencyScore
	})
	if len(entries) > matrixResultCap {
		entries = entries[:matrixResultCap]
	}
	return entries, nil
}

// OptimalComposition is the best recommendation for one revenue target.
type OptimalComposition struct {
	TargetRevenue    float64         `json:"target_revenue"`
	Composition      CrewComposition `json:"recommended_composition"`
	ProjectedRevenue float64         `json:"projected_revenue"`
	TotalCrews       int             `json:"total_crews"`
	LaborCost        float64         `json:"labor_cost"`
	LaborPercentage  float64         `json:"labor_percentage"`
	RevenueGapPct    float64         `json:"revenue_gap_pct"`
	EfficiencyScore  float64         `json:"efficiency_score"`
}

// OptimalCrewSizes runs the recommender across several revenue targets and
// keeps the top candidate for each.
func (p *Planner) OptimalCrewSizes(targets []float64, scenario Scenario) (map[string]OptimalComposition, error) {
	out := make(map[string]OptimalComposition, len(targets))
	for _, target := range targets {
		result, err := p.Recommend(target, scenario)
		if err != nil {
			return nil, err
		}
		if len(result.Recommendations) == 0 {
			continue
		}
		best := result.Recommendations[0]
		out[formatTarget(target)] = OptimalComposition{
			TargetRevenue:    target,
			Composition:      best.Composition,
			ProjectedRevenue: best.Capacity.TotalSeasonalRevenue,
			TotalCrews:       best.Capacity.TotalCrews,
			LaborCost:        best.Capacity.TotalLaborCost,
			LaborPercentage:  best.Capacity.LaborPercentage,
			RevenueGapPct:    best.RevenueGapPct,
			EfficiencyScore:  best.EfficiencyScore,
		}
	}
	return out, nil
}

func formatTarget(target float64) string {
	if target == math.Trunc(target) {
		return fmt.Sprintf("%d", int64(target))
	}
	return fmt.Sprintf("%g", target)
}

// SensitivityPoint is one row of the sensitivity sweep.
type SensitivityPoint struct {
	PerformanceMultiplier float64 `json:"performance_multiplier"`
	Revenue               float64 `json:"revenue"`
	LaborCost             float64 `json:"labor_cost"`
	LaborPercentage       float64 `json:"labor_percentage"`
	Profit                float64 `json:"profit"`
}

// Sensitivity sweeps performance multipliers from 0.7 to 1.3 in 0.1 steps
// for a fixed composition under every scenario. Labor cost is held constant;
// only revenue scales with the multiplier.
func (p *Planner) Sensitivity(comp CrewComposition) (map[Scenario][]SensitivityPoint, error) {
	out := make(map[Scenario][]SensitivityPoint, 3)
	for _, scenario := range Scenarios() {
		capacity, err := p.Capacity(comp, scenario)
		if err != nil {
			return nil, err
		}

		var points []SensitivityPoint
		for step := 0; step <= 6; step++ {
			multiplier := math.Round((0.7+0.1*float64(step))*10) / 10
			revenue := capacity.TotalSeasonalRevenue * multiplier
			laborPct := 0.0
			if revenue > 0 {
				laborPct = capacity.TotalLaborCost / revenue * 100
			}
			points = append(points, SensitivityPoint{
				PerformanceMultiplier: multiplier,
				Revenue:               revenue,
				LaborCost:             capacity.TotalLaborCost,
				LaborPercentage:       laborPct,
				Profit:                revenue - capacity.TotalLaborCost,
			})
		}
		out[scenario] = points
	}
	return out, nil
}

// EfficiencyEntry is one composition's row in the efficiency comparison.
type EfficiencyEntry struct {
	CompositionName string          `json:"composition_name"`
	Composition     CrewComposition `json:"composition"`
	TotalCrews      int             `json:"total_crews"`
	TotalRevenue    float64         `json:"total_revenue"`
	TotalLaborCost  float64         `json:"total_labor_cost"`
	RevenuePerCrew  float64         `json:"revenue_per_crew"`
	CostPerCrew     float64         `json:"cost_per_crew"`
	EfficiencyRatio float64         `json:"efficiency_ratio"`
	LaborPercentage float64         `json:"labor_percentage"`
}

// referenceCompositions are the stock mixes compared by the efficiency
// analysis, from all-beginner to all-expert.
var referenceCompositions = []NamedComposition{
	{Name: "All Beginners", CrewComposition: CrewComposition{BeginnerCrews: 6}},
	{Name: "Mixed Low", CrewComposition: CrewComposition{BeginnerCrews: 3, IntermediateCrews: 2, AdvancedCrews: 1}},
	{Name: "Balanced", CrewComposition: CrewComposition{BeginnerCrews: 1, IntermediateCrews: 2, AdvancedCrews: 2, ExpertCrews: 1}},
	{Name: "Mixed High", CrewComposition: CrewComposition{IntermediateCrews: 1, AdvancedCrews: 2, ExpertCrews: 2}},
	{Name: "All Experts", CrewComposition: CrewComposition{ExpertCrews: 4}},
}

// CrewEfficiency compares the stock reference mixes under one scenario,
// sorted by per-crew efficiency descending.
func (p *Planner) CrewEfficiency(scenario Scenario) ([]EfficiencyEntry, error) {
	var entries []EfficiencyEntry
	for _, ref := range referenceCompositions {
		capacity, err := p.Capacity(ref.CrewComposition, scenario)
		if err != nil {
			return nil, err
		}

		crews := float64(capacity.TotalCrews)
		revenuePerCrew := capacity.TotalSeasonalRevenue / crews
		costPerCrew := capacity.TotalLaborCost / crews
		ratio := 0.0
		if costPerCrew > 0 {
			ratio = revenuePerCrew / costPerCrew
		}
		entries = append(entries, EfficiencyEntry{
			CompositionName: ref.Name,
			Composition:     ref.CrewComposition,
			TotalCrews:      capacity.TotalCrews,
			TotalRevenue:    capacity.TotalSeasonalRevenue,
			TotalLaborCost:  capacity.TotalLaborCost,
			RevenuePerCrew:  revenuePerCrew,
			CostPerCrew:     costPerCrew,
			EfficiencyRatio: ratio,
			LaborPercentage: capacity.LaborPercentage,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EfficiencyRatio > entries[j].EfficiencyRatio
	})
	return entries, nil
}
