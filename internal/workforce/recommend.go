package workforce

import (
	"math"
	"sort"
)

// The recommender enumerates this fixed ratio grid rather than solving an
// optimization problem: 5x5 pairings of expert and advanced shares, with the
// remainder split between intermediate (capped) and beginner. The advanced
// list deliberately repeats 0.3; the enumeration order below is part of the
// contract because the ranking tie-break depends on it.
var (
	expertRatios   = []float64{0.4, 0.3, 0.2, 0.1, 0.0}
	advancedRatios = []float64{0.3, 0.4, 0.3, 0.2, 0.1}
)

const (
	maxIntermediateRatio = 0.4
	maxRecommendations   = 5
)

// Recommendation is one candidate crew composition with its score inputs.
type Recommendation struct {
	Composition     CrewComposition `json:"composition"`
	Capacity        CapacityResult  `json:"capacity"`
	RevenueGap      float64         `json:"revenue_gap"`
	RevenueGapPct   float64         `json:"revenue_gap_pct"`
	EfficiencyScore float64         `json:"efficiency_score"`
}

// RecommendationResult holds the ranked candidates for one target.
type RecommendationResult struct {
	TargetRevenue   float64          `json:"target_revenue"`
	Scenario        Scenario         `json:"scenario"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommend searches the ratio grid for crew compositions approximating the
// target seasonal revenue. Candidates are ranked by revenue gap ascending,
// then efficiency (revenue per labor dollar) descending, and capped at five.
func (p *Planner) Recommend(targetRevenue float64, scenario Scenario) (RecommendationResult, error) {
	if !scenario.Valid() {
		return RecommendationResult{}, ErrUnknownScenario
	}

	requiredDaily := 0.0
	if days := p.InSeasonDays(); days > 0 {
		requiredDaily = targetRevenue / float64(days)
	}

	baseRevenue := func(level string) float64 {
		return p.cfg.ExperienceLevels[level].RevenueRange.Base
	}

	var candidates []Recommendation
	for _, expertRatio := range expertRatios {
		for _, advancedRatio := range advancedRatios {
			remaining := 1.0 - expertRatio - advancedRatio
			if remaining < 0 {
				continue
			}

			intermediateRatio := math.Min(remaining, maxIntermediateRatio)
			beginnerRatio := remaining - intermediateRatio

			weightedDaily := expertRatio*baseRevenue(LevelExpert) +
				advancedRatio*baseRevenue(LevelAdvanced) +
				intermediateRatio*baseRevenue(LevelIntermediate) +
				beginnerRatio*baseRevenue(LevelBeginner)
			if weightedDaily <= 0 {
				continue
			}

			estimated := int(requiredDaily / weightedDaily)
			if estimated < 1 {
				estimated = 1
			}

			// Floor-allocate per tier; beginner absorbs the remainder.
			expertCrews := int(float64(estimated) * expertRatio)
			advancedCrews := int(float64(estimated) * advancedRatio)
			intermediateCrews := int(float64(estimated) * intermediateRatio)
			comp := CrewComposition{
				ExpertCrews:       expertCrews,
				AdvancedCrews:     advancedCrews,
				IntermediateCrews: intermediateCrews,
				BeginnerCrews:     estimated - expertCrews - advancedCrews - intermediateCrews,
			}
			if comp.Total() == 0 {
				continue
			}

			capacity, err := p.Capacity(comp, scenario)
			if err != nil {
				continue
			}

			gap := math.Abs(capacity.TotalSeasonalRevenue - targetRevenue)
			gapPct := 0.0
			if targetRevenue > 0 {
				gapPct = gap / targetRevenue * 100
			}
			efficiency := 0.0
			if capacity.TotalLaborCost > 0 {
				efficiency = capacity.TotalSeasonalRevenue / capacity.TotalLaborCost
			}

			candidates = append(candidates, Recommendation{
				Composition:     comp,
				Capacity:        capacity,
				RevenueGap:      gap,
				RevenueGapPct:   gapPct,
				EfficiencyScore: efficiency,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].RevenueGapPct != candidates[j].RevenueGapPct {
			return candidates[i].RevenueGapPct < candidates[j].RevenueGapPct
		}
		return candidates[i].EfficiencyScore > candidates[j].EfficiencyScore
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	return RecommendationResult{
		TargetRevenue:   targetRevenue,
		Scenario:        scenario,
		Recommendations: candidates,
	}, nil
}
