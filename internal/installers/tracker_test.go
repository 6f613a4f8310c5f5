package installers

import (
	"math"
	"testing"

	"github.com/peakseason/planner/internal/workforce"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestTracker_InstallerCapacity(t *testing.T) {
	store := NewStore(newTestDB(t))
	tracker := NewTracker(store)

	inst := Installer{
		Name:            "Rowan",
		ExperienceLevel: "Advanced",
		CommittedDays:   []string{"2025-10-01", "2025-10-02", "2025-10-03"},
	}

	got, err := tracker.Capacity(inst, workforce.BaseCase)
	if err != nil {
		t.Fatalf("Capacity returned error: %v", err)
	}

	nearlyEqual(t, "DailyRevenue", got.DailyRevenue, 6250)
	nearlyEqual(t, "TotalRevenueCapacity", got.TotalRevenueCapacity, 18750)
	nearlyEqual(t, "GuaranteedPay", got.GuaranteedPay, 825)
	nearlyEqual(t, "ProductionBonus", got.ProductionBonus, 1875)
	nearlyEqual(t, "TotalCompensation", got.TotalCompensation, 2700)
	nearlyEqual(t, "EffectiveHourlyRate", got.EffectiveHourlyRate, 2700.0/(3*12))
}

func TestTracker_CapacityZeroDaysGuardsHourly(t *testing.T) {
	tracker := NewTracker(NewStore(newTestDB(t)))

	got, err := tracker.Capacity(Installer{ExperienceLevel: "Beginner"}, workforce.WorstCase)
	if err != nil {
		t.Fatalf("Capacity returned error: %v", err)
	}
	nearlyEqual(t, "EffectiveHourlyRate", got.EffectiveHourlyRate, 0)
	nearlyEqual(t, "DailyRevenue", got.DailyRevenue, 2500)
}

func TestTracker_CapacityUnknownLevel(t *testing.T) {
	tracker := NewTracker(NewStore(newTestDB(t)))

	if _, err := tracker.Capacity(Installer{ExperienceLevel: "Apprentice"}, workforce.BaseCase); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestTracker_TotalCommittedSumsActiveOnly(t *testing.T) {
	store := NewStore(newTestDB(t))
	tracker := NewTracker(store)

	if _, err := store.Add("A", "Beginner", []string{"d1", "d2"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	second, err := store.Add("B", "Expert", []string{"d1"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := store.Remove(second.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	got, err := tracker.TotalCommitted(workforce.BaseCase)
	if err != nil {
		t.Fatalf("TotalCommitted returned error: %v", err)
	}
	if got.InstallerCount != 1 {
		t.Fatalf("InstallerCount = %d, want 1", got.InstallerCount)
	}
	// One beginner at 3250/day for two committed days.
	nearlyEqual(t, "TotalCommittedRevenue", got.TotalCommittedRevenue, 6500)
}

func TestTracker_RemainingCapacity(t *testing.T) {
	store := NewStore(newTestDB(t))
	tracker := NewTracker(store)

	if _, err := store.Add("A", "Expert", []string{"d1", "d2", "d3", "d4"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	got, err := tracker.Remaining(1500000, workforce.BaseCase)
	if err != nil {
		t.Fatalf("Remaining returned error: %v", err)
	}

	committed := 7750.0 * 4
	nearlyEqual(t, "CommittedRevenue", got.CommittedRevenue, committed)
	nearlyEqual(t, "RemainingRevenue", got.RemainingRevenue, 1500000-committed)
	nearlyEqual(t, "PercentageCommitted", got.PercentageCommitted, committed/1500000*100)

	// Expert seasonal capacity estimate: 7750 * 60 = 465000.
	wantExperts := int(math.Floor((1500000 - committed) / 465000))
	if got.AdditionalInstallersNeeded["Expert"] != wantExperts {
		t.Fatalf("additional experts = %d, want %d", got.AdditionalInstallersNeeded["Expert"], wantExperts)
	}
}

func TestTracker_RemainingNeverNegative(t *testing.T) {
	store := NewStore(newTestDB(t))
	tracker := NewTracker(store)

	days := make([]string, 100)
	for i := range days {
		days[i] = "d"
	}
	if _, err := store.Add("Overbooked", "Expert", days); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	got, err := tracker.Remaining(1000, workforce.BestCase)
	if err != nil {
		t.Fatalf("Remaining returned error: %v", err)
	}
	for level, count := range got.AdditionalInstallersNeeded {
		if count < 0 {
			t.Fatalf("level %s: negative installer need %d", level, count)
		}
	}
}

func TestTracker_RecruitmentPresentationUsesLegacyKeys(t *testing.T) {
	tracker := NewTracker(NewStore(newTestDB(t)))

	got, err := tracker.RecruitmentPresentation("Intermediate", 40)
	if err != nil {
		t.Fatalf("RecruitmentPresentation returned error: %v", err)
	}

	for _, key := range []string{"worst", "base", "best"} {
		if _, ok := got.Scenarios[key]; !ok {
			t.Fatalf("missing scenario %q", key)
		}
	}

	base := got.Scenarios["base"]
	nearlyEqual(t, "DailyRevenueResponsibility", base.DailyRevenueResponsibility, 4750)
	nearlyEqual(t, "TotalRevenueResponsibility", base.TotalRevenueResponsibility, 4750*40)
	nearlyEqual(t, "GuaranteedPay", base.GuaranteedPay, 225*40)
	nearlyEqual(t, "ProductionBonus", base.ProductionBonus, 4750*40*0.10)
	nearlyEqual(t, "TotalHours", base.TotalHours, 480)
}
