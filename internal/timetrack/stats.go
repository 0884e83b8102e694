package timetrack

import (
	"fmt"
	"math"
	"time"

	"staffhub/api-gateway/models"
)

// Period selects the reporting window for worked-hours statistics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period query value. Empty defaults to month.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(value), nil
	case "":
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("invalid period %q, expected week, month, year or all", value)
}

// WorkedHoursStats is the summary for one employee over a period.
type WorkedHoursStats struct {
	Period               Period             `json:"period"`
	TotalHours           float64            `json:"total_hours"`
	TotalEntries         int                `json:"total_entries"`
	AverageHoursPerEntry float64            `json:"average_hours_per_entry"`
	DailyBreakdown       map[string]float64 `json:"daily_breakdown"`
}

// CalculateWorkedHours sums the employee's approved time entries from the
// period's start date onward. The boundary is inclusive: an entry dated
// exactly seven days ago still counts for the week period.
func (s *Service) CalculateWorkedHours(employeeID string, period Period) (*WorkedHoursStats, error) {
	since := periodStart(s.now(), period).Format(models.EntryDateFormat)

	entries, err := s.entries.ListApprovedEntriesSince(employeeID, since)
	if err != nil {
		return nil, err
	}

	stats := &WorkedHoursStats{
		Period:         period,
		TotalEntries:   len(entries),
		DailyBreakdown: make(map[string]float64),
	}

	var total float64
	for _, entry := range entries {
		total += entry.Hours
		stats.DailyBreakdown[entry.EntryDate] += entry.Hours
	}
	for date, hours := range stats.DailyBreakdown {
		stats.DailyBreakdown[date] = round2(hours)
	}
	stats.TotalHours = round2(total)

	// Guard against division by zero: no entries means an average of 0.
	if stats.TotalEntries > 0 {
		stats.AverageHoursPerEntry = round2(total / float64(stats.TotalEntries))
	}

	return stats, nil
}

// periodStart computes the inclusive start date of a reporting period:
// week = 7 days back, month = first of the current month, year = January 1
// of the current year, all = epoch.
func periodStart(now time.Time, period Period) time.Time {
	switch period {
	case PeriodWeek:
		cutoff := now.AddDate(0, 0, -7)
		return time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, now.Location())
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Unix(0, 0).UTC()
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
