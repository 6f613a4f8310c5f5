package workforce

import (
	"errors"
	"testing"
)

func TestCapacity_SingleBeginnerCrew(t *testing.T) {
	p := NewDefaultPlanner()

	got, err := p.Capacity(CrewComposition{BeginnerCrews: 1}, BaseCase)
	if err != nil {
		t.Fatalf("Capacity returned error: %v", err)
	}

	if got.TotalCrews != 1 {
		t.Fatalf("TotalCrews = %d, want 1", got.TotalCrews)
	}
	if got.InSeasonDays != 60 {
		t.Fatalf("InSeasonDays = %d, want 60", got.InSeasonDays)
	}
	nearlyEqual(t, "TotalDailyCapacity", got.TotalDailyCapacity, 3250)
	nearlyEqual(t, "TotalSeasonalRevenue", got.TotalSeasonalRevenue, 195000)

	// Leader compensation 29200 plus one junior at 18/h for 12h.
	nearlyEqual(t, "TotalLaborCost", got.TotalLaborCost, 29200+18*12)
	nearlyEqual(t, "LaborPercentage", got.LaborPercentage, (29200+216)/195000.0*100)

	entry, ok := got.CapacityByLevel[LevelBeginner]
	if !ok {
		t.Fatal("missing beginner capacity entry")
	}
	nearlyEqual(t, "JuniorInstallerCost", entry.JuniorInstallerCost, 216)
	nearlyEqual(t, "CrewLeaderCompensation", entry.CrewLeaderCompensation, 29200)
}

func TestCapacity_MixedComposition(t *testing.T) {
	p := NewDefaultPlanner()

	comp := CrewComposition{BeginnerCrews: 2, AdvancedCrews: 1, ExpertCrews: 1}
	got, err := p.Capacity(comp, BaseCase)
	if err != nil {
		t.Fatalf("Capacity returned error: %v", err)
	}

	if got.TotalCrews != 4 {
		t.Fatalf("TotalCrews = %d, want 4", got.TotalCrews)
	}
	nearlyEqual(t, "TotalDailyCapacity", got.TotalDailyCapacity, 2*3250+6250+7750)
	if _, ok := got.CapacityByLevel[LevelIntermediate]; ok {
		t.Fatal("zero-count tier should not appear in the breakdown")
	}
}

func TestCapacity_NoCrewsIsTaggedError(t *testing.T) {
	p := NewDefaultPlanner()

	for _, scenario := range Scenarios() {
		_, err := p.Capacity(CrewComposition{}, scenario)
		if !errors.Is(err, ErrNoCrews) {
			t.Fatalf("Capacity(%s) error = %v, want ErrNoCrews", scenario, err)
		}
	}
}

func TestCapacity_ZeroRevenueGuardsLaborPercentage(t *testing.T) {
	cfg := DefaultConfig()
	level := cfg.ExperienceLevels[LevelBeginner]
	level.RevenueRange = RevenueRange{}
	cfg.ExperienceLevels[LevelBeginner] = level
	p := NewPlanner(cfg)

	got, err := p.Capacity(CrewComposition{BeginnerCrews: 1}, BaseCase)
	if err != nil {
		t.Fatalf("Capacity returned error: %v", err)
	}
	nearlyEqual(t, "TotalSeasonalRevenue", got.TotalSeasonalRevenue, 0)
	nearlyEqual(t, "LaborPercentage", got.LaborPercentage, 0)
}
