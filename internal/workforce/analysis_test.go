package workforce

import (
	"errors"
	"testing"
)

func TestCompareScenarios_DefaultsToAllScenarios(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.CompareScenarios([]NamedComposition{
		{Name: "Small", CrewComposition: CrewComposition{BeginnerCrews: 2}},
		{CrewComposition: CrewComposition{ExpertCrews: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("CompareScenarios returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 compositions, got %d", len(got))
	}
	if _, ok := got["Composition 2"]; !ok {
		t.Fatal("unnamed composition should get a positional name")
	}
	for name, byScenario := range got {
		if len(byScenario) != 3 {
			t.Fatalf("%s: expected 3 scenarios, got %d", name, len(byScenario))
		}
	}
}

func TestCompareScenarios_FailsOnEmptyComposition(t *testing.T) {
	p := NewDefaultPlanner()

	_, err := p.CompareScenarios([]NamedComposition{{Name: "Empty"}}, nil)
	if !errors.Is(err, ErrNoCrews) {
		t.Fatalf("expected ErrNoCrews, got %v", err)
	}
}

func TestFinancialSummaries_MarginArithmetic(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.FinancialSummaries(CrewComposition{BeginnerCrews: 1})
	if err != nil {
		t.Fatalf("FinancialSummaries returned error: %v", err)
	}

	base := got[BaseCase]
	nearlyEqual(t, "TotalSeasonalRevenue", base.TotalSeasonalRevenue, 195000)
	nearlyEqual(t, "MaterialCost", base.MaterialCost, 195000*0.30)
	nearlyEqual(t, "DirectCosts", base.DirectCosts, base.TotalLaborCost+base.MaterialCost)
	nearlyEqual(t, "GrossProfit", base.GrossProfit, 195000-base.DirectCosts)
	nearlyEqual(t, "OperatingCosts", base.OperatingCosts, 195000*0.25)
	nearlyEqual(t, "NetProfit", base.NetProfit, base.GrossProfit-base.OperatingCosts)
	nearlyEqual(t, "GrossMargin", base.GrossMargin, base.GrossProfit/195000*100)
}

func TestRecruitment_ScenarioMultipliers(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.Recruitment(LevelAdvanced)
	if err != nil {
		t.Fatalf("Recruitment returned error: %v", err)
	}

	if len(got.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(got.Scenarios))
	}
	nearlyEqual(t, "worst multiplier", got.Scenarios[WorstCase].PerformanceMultiplier, 0.8)
	nearlyEqual(t, "base multiplier", got.Scenarios[BaseCase].PerformanceMultiplier, 1.0)
	nearlyEqual(t, "best multiplier", got.Scenarios[BestCase].PerformanceMultiplier, 1.2)

	// 146 working days / 5-day weeks / 2 = 14.6 bi-weekly periods.
	base := got.Scenarios[BaseCase]
	nearlyEqual(t, "BiWeeklyPerDiem", base.BiWeeklyPerDiem, base.TotalPerDiem/(146.0/5/2))

	if got.ExperienceConfig.Name != "Advanced" {
		t.Fatalf("unexpected experience config: %+v", got.ExperienceConfig)
	}
	nearlyEqual(t, "break-even per diem", got.BreakEven.TotalPerDiem, 40150)
}

func TestCapacityMatrix_BoundsAndOrdering(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.CapacityMatrix(2, BaseCase)
	if err != nil {
		t.Fatalf("CapacityMatrix returned error: %v", err)
	}

	if len(got) == 0 {
		t.Fatal("expected matrix entries")
	}
	if len(got) > 50 {
		t.Fatalf("expected at most 50 entries, got %d", len(got))
	}
	for i, entry := range got {
		if entry.TotalCrews == 0 || entry.TotalCrews > 10 {
			t.Fatalf("entry %d has out-of-range crew total %d", i, entry.TotalCrews)
		}
		if i > 0 && entry.EfficiencyScore > got[i-1].EfficiencyScore {
			t.Fatalf("matrix not sorted by efficiency at index %d", i)
		}
	}
}

func TestOptimalCrewSizes_KeyedByTarget(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.OptimalCrewSizes([]float64{1200000, 1800000}, BaseCase)
	if err != nil {
		t.Fatalf("OptimalCrewSizes returned error: %v", err)
	}

	for _, key := range []string{"1200000", "1800000"} {
		best, ok := got[key]
		if !ok {
			t.Fatalf("missing optimal composition for target %s", key)
		}
		if best.TotalCrews == 0 {
			t.Fatalf("target %s: empty composition", key)
		}
	}
}

func TestSensitivity_SweepShape(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.Sensitivity(CrewComposition{AdvancedCrews: 1, IntermediateCrews: 2, ExpertCrews: 1})
	if err != nil {
		t.Fatalf("Sensitivity returned error: %v", err)
	}

	for scenario, points := range got {
		if len(points) != 7 {
			t.Fatalf("%s: expected 7 points, got %d", scenario, len(points))
		}
		nearlyEqual(t, "first multiplier", points[0].PerformanceMultiplier, 0.7)
		nearlyEqual(t, "last multiplier", points[6].PerformanceMultiplier, 1.3)
		for _, pt := range points {
			nearlyEqual(t, "profit", pt.Profit, pt.Revenue-pt.LaborCost)
		}
		// Labor cost stays flat across the sweep.
		nearlyEqual(t, "labor cost stable", points[0].LaborCost, points[6].LaborCost)
	}
}

func TestCrewEfficiency_SortedDescending(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.CrewEfficiency(BaseCase)
	if err != nil {
		t.Fatalf("CrewEfficiency returned error: %v", err)
	}

	if len(got) != 5 {
		t.Fatalf("expected 5 reference mixes, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].EfficiencyRatio > got[i-1].EfficiencyRatio {
			t.Fatalf("efficiency analysis not sorted at index %d", i)
		}
	}
}
