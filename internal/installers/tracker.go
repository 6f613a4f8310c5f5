package installers

import (
	"fmt"
	"math"

	"github.com/peakseason/planner/internal/workforce"
)

// Tracker assumptions. The seasonal capacity estimate uses a rough 60
// in-season days; installer bonus is a flat base rate on committed revenue.
const (
	trackerHoursPerDay  = 12.0
	baseBonusRate       = 0.10
	assumedInSeasonDays = 60.0
)

// Tracker evaluates revenue commitments across tracked installers. Its rate
// records are keyed by display-name level ("Beginner") and its API accepts
// the legacy short scenario keys, translated through the planner's mapping.
type Tracker struct {
	store         *Store
	revenueRanges map[string]workforce.RevenueRange
	perDiemRates  map[string]float64
}

// NewTracker returns a Tracker over the given store with the stock rate
// records.
func NewTracker(store *Store) *Tracker {
	return &Tracker{
		store: store,
		revenueRanges: map[string]workforce.RevenueRange{
			"Beginner":     {Min: 2500, Base: 3250, Max: 4000},
			"Intermediate": {Min: 4000, Base: 4750, Max: 5500},
			"Advanced":     {Min: 5500, Base: 6250, Max: 7000},
			"Expert":       {Min: 7000, Base: 7750, Max: 8500},
		},
		perDiemRates: map[string]float64{
			"Beginner":     200,
			"Intermediate": 225,
			"Advanced":     275,
			"Expert":       300,
		},
	}
}

// Levels returns the tracked experience level names.
func (t *Tracker) Levels() []string {
	return []string{"Beginner", "Intermediate", "Advanced", "Expert"}
}

// RevenueRanges exposes the per-level revenue records.
func (t *Tracker) RevenueRanges() map[string]workforce.RevenueRange {
	out := make(map[string]workforce.RevenueRange, len(t.revenueRanges))
	for k, v := range t.revenueRanges {
		out[k] = v
	}
	return out
}

// PerDiemRates exposes the per-level per-diem records.
func (t *Tracker) PerDiemRates() map[string]float64 {
	out := make(map[string]float64, len(t.perDiemRates))
	for k, v := range t.perDiemRates {
		out[k] = v
	}
	return out
}

// InstallerCapacity is one installer's committed revenue and compensation
// picture.
type InstallerCapacity struct {
	DailyRevenue         float64 `json:"daily_revenue"`
	CommittedDays        int     `json:"committed_days"`
	TotalRevenueCapacity float64 `json:"total_revenue_capacity"`
	PerDiemRate          float64 `json:"per_diem_rate"`
	GuaranteedPay        float64 `json:"guaranteed_pay"`
	ProductionBonus      float64 `json:"production_bonus"`
	TotalCompensation    float64 `json:"total_compensation"`
	EffectiveHourlyRate  float64 `json:"effective_hourly_rate"`
}

// Capacity computes one installer's revenue capacity under a scenario.
func (t *Tracker) Capacity(inst Installer, scenario workforce.Scenario) (InstallerCapacity, error) {
	ranges, ok := t.revenueRanges[inst.ExperienceLevel]
	if !ok {
		return InstallerCapacity{}, fmt.Errorf("no revenue range for level %q", inst.ExperienceLevel)
	}

	committedDays := len(inst.CommittedDays)
	dailyRevenue := scenario.Select(ranges)
	totalRevenue := dailyRevenue * float64(committedDays)

	perDiem := t.perDiemRates[inst.ExperienceLevel]
	guaranteed := perDiem * float64(committedDays)
	bonus := totalRevenue * baseBonusRate
	total := guaranteed + bonus

	hourly := 0.0
	if committedDays > 0 {
		hourly = total / (float64(committedDays) * trackerHoursPerDay)
	}

	return InstallerCapacity{
		DailyRevenue:         dailyRevenue,
		CommittedDays:        committedDays,
		TotalRevenueCapacity: totalRevenue,
		PerDiemRate:          perDiem,
		GuaranteedPay:        guaranteed,
		ProductionBonus:      bonus,
		TotalCompensation:    total,
		EffectiveHourlyRate:  hourly,
	}, nil
}

// InstallerCommitment pairs an installer with their capacity.
type InstallerCommitment struct {
	Installer Installer         `json:"installer"`
	Capacity  InstallerCapacity `json:"capacity"`
}

// CommittedRevenue aggregates commitments across all active installers.
type CommittedRevenue struct {
	TotalCommittedRevenue float64               `json:"total_committed_revenue"`
	InstallerCount        int                   `json:"installer_count"`
	Breakdown             []InstallerCommitment `json:"installer_breakdown"`
}

// TotalCommitted sums revenue commitments across active installers.
func (t *Tracker) TotalCommitted(scenario workforce.Scenario) (CommittedRevenue, error) {
	active, err := t.store.ListActive()
	if err != nil {
		return CommittedRevenue{}, err
	}

	out := CommittedRevenue{
		InstallerCount: len(active),
		Breakdown:      make([]InstallerCommitment, 0, len(active)),
	}
	for _, inst := range active {
		capacity, err := t.Capacity(inst, scenario)
		if err != nil {
			return CommittedRevenue{}, err
		}
		out.TotalCommittedRevenue += capacity.TotalRevenueCapacity
		out.Breakdown = append(out.Breakdown, InstallerCommitment{Installer: inst, Capacity: capacity})
	}
	return out, nil
}

// RemainingCapacity reports the shortfall against a revenue target and the
// additional installers needed per level to close it.
type RemainingCapacity struct {
	TargetRevenue              float64               `json:"target_revenue"`
	CommittedRevenue           float64               `json:"committed_revenue"`
	RemainingRevenue           float64               `json:"remaining_revenue"`
	PercentageCommitted        float64               `json:"percentage_committed"`
	AdditionalInstallersNeeded map[string]int        `json:"additional_installers_needed"`
	CurrentInstallers          []InstallerCommitment `json:"current_installers"`
}

// Remaining compares committed revenue against a target. The per-level
// installer estimate assumes each installer covers the level's daily revenue
// for sixty in-season days.
func (t *Tracker) Remaining(targetRevenue float64, scenario workforce.Scenario) (RemainingCapacity, error) {
	committed, err := t.TotalCommitted(scenario)
	if err != nil {
		return RemainingCapacity{}, err
	}

	remaining := targetRevenue - committed.TotalCommittedRevenue

	needed := make(map[string]int, len(t.revenueRanges))
	for level, ranges := range t.revenueRanges {
		seasonal := scenario.Select(ranges) * assumedInSeasonDays
		count := 0
		if seasonal > 0 {
			count = int(math.Floor(remaining / seasonal))
		}
		if count < 0 {
			count = 0
		}
		needed[level] = count
	}

	pctCommitted := 0.0
	if targetRevenue > 0 {
		pctCommitted = committed.TotalCommittedRevenue / targetRevenue * 100
	}

	return RemainingCapacity{
		TargetRevenue:              targetRevenue,
		CommittedRevenue:           committed.TotalCommittedRevenue,
		RemainingRevenue:           remaining,
		PercentageCommitted:        pctCommitted,
		AdditionalInstallersNeeded: needed,
		CurrentInstallers:          committed.Breakdown,
	}, nil
}

// PresentationScenario is one scenario column of the recruitment deck.
type PresentationScenario struct {
	DailyRevenueResponsibility float64 `json:"daily_revenue_responsibility"`
	TotalRevenueResponsibility float64 `json:"total_revenue_responsibility"`
	GuaranteedPay              float64 `json:"guaranteed_pay"`
	ProductionBonus            float64 `json:"production_bonus"`
	TotalCompensation          float64 `json:"total_compensation"`
	EffectiveHourlyRate        float64 `json:"effective_hourly_rate"`
	HoursPerDay                float64 `json:"hours_per_day"`
	TotalHours                 float64 `json:"total_hours"`
}

// Presentation is the recruitment pitch data for one level and commitment.
type Presentation struct {
	ExperienceLevel string                          `json:"experience_level"`
	CommittedDays   int                             `json:"committed_days"`
	PerDiemRate     float64                         `json:"per_diem_rate"`
	Scenarios       map[string]PresentationScenario `json:"scenarios"`
}

// RecruitmentPresentation builds per-scenario compensation figures for a
// recruiting conversation, keyed by the legacy short scenario names.
func (t *Tracker) RecruitmentPresentation(experienceLevel string, committedDays int) (Presentation, error) {
	ranges, ok := t.revenueRanges[experienceLevel]
	if !ok {
		return Presentation{}, fmt.Errorf("no revenue range for level %q", experienceLevel)
	}

	perDiem := t.perDiemRates[experienceLevel]
	out := Presentation{
		ExperienceLevel: experienceLevel,
		CommittedDays:   committedDays,
		PerDiemRate:     perDiem,
		Scenarios:       make(map[string]PresentationScenario, 3),
	}

	for _, scenario := range workforce.Scenarios() {
		daily := scenario.Select(ranges)
		totalRevenue := daily * float64(committedDays)
		guaranteed := perDiem * float64(committedDays)
		bonus := totalRevenue * baseBonusRate
		total := guaranteed + bonus

		hourly := 0.0
		if committedDays > 0 {
			hourly = total / (float64(committedDays) * trackerHoursPerDay)
		}

		out.Scenarios[scenario.LegacyKey()] = PresentationScenario{
			DailyRevenueResponsibility: daily,
			TotalRevenueResponsibility: totalRevenue,
			GuaranteedPay:              guaranteed,
			ProductionBonus:            bonus,
			TotalCompensation:          total,
			EffectiveHourlyRate:        hourly,
			HoursPerDay:                trackerHoursPerDay,
			TotalHours:                 float64(committedDays) * trackerHoursPerDay,
		}
	}
	return out, nil
}
