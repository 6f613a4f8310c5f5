package workforce

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a civil date with day precision, serialized as YYYY-MM-DD. The
// underlying instant is always midnight UTC so that day arithmetic is exact.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the inclusive day count from d through end. A zero-length
// range (d == end) counts as one day.
func (d Date) DaysUntil(end Date) int {
	return int(end.Sub(d.Time).Hours()/24) + 1
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// WorkingDays converts a season's date range and weekly cadence into a
// working-day count: inclusive calendar days, real-valued weeks, one final
// floor. Short seasons at low cadence can legitimately come out as zero.
func WorkingDays(season SeasonConfig) int {
	totalDays := season.StartDate.DaysUntil(season.EndDate)
	weeks := float64(totalDays) / 7
	return int(math.Floor(weeks * season.WorkingDaysPerWeek))
}

// TotalWorkingDays sums working days across every configured season.
func (p *Planner) TotalWorkingDays() int {
	total := 0
	for _, season := range p.cfg.Seasons {
		total += WorkingDays(season)
	}
	return total
}

// InSeasonDays sums working days across production-eligible seasons.
func (p *Planner) InSeasonDays() int {
	total := 0
	for _, season := range p.cfg.Seasons {
		if season.ProductionEligible {
			total += WorkingDays(season)
		}
	}
	return total
}
