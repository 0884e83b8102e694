package timetrack

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"staffhub/api-gateway/models"
)

func seedEntry(f *fakeStore, employeeID uuid.UUID, date string, hours float64) {
	f.entries = append(f.entries, models.TimeEntry{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		TaskAssignmentID: uuid.New(),
		Hours:            hours,
		EntryDate:        date,
		Status:           models.TimeEntryApproved,
	})
}

func TestCalculateWorkedHours_WeekBoundary(t *testing.T) {
	f := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newTestService(f, now)
	employee := uuid.New()

	seedEntry(f, employee, "2025-03-10", 2)   // today
	seedEntry(f, employee, "2025-03-03", 1.5) // exactly 7 days ago: included
	seedEntry(f, employee, "2025-03-02", 3)   // 8 days ago: excluded

	stats, err := s.CalculateWorkedHours(employee.String(), PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 entries in week window, got %d", stats.TotalEntries)
	}
	if stats.TotalHours != 3.5 {
		t.Errorf("expected 3.5 total hours, got %v", stats.TotalHours)
	}
	if _, ok := stats.DailyBreakdown["2025-03-02"]; ok {
		t.Error("entry dated 8 days ago must not appear in the breakdown")
	}
}

func TestCalculateWorkedHours_WeekScenario(t *testing.T) {
	// 2h today and 3h eight days ago: only today's entry counts.
	f := newFakeStore()
	now := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	s := newTestService(f, now)
	employee := uuid.New()

	seedEntry(f, employee, "2025-06-20", 2)
	seedEntry(f, employee, "2025-06-12", 3)

	stats, err := s.CalculateWorkedHours(employee.String(), PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalHours != 2 {
		t.Errorf("expected total 2, got %v", stats.TotalHours)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.TotalEntries)
	}
	if len(stats.DailyBreakdown) != 1 || stats.DailyBreakdown["2025-06-20"] != 2 {
		t.Errorf("expected breakdown {2025-06-20: 2}, got %v", stats.DailyBreakdown)
	}
}

func TestCalculateWorkedHours_EmptyAverageGuard(t *testing.T) {
	f := newFakeStore()
	s := newTestService(f, time.Now())

	stats, err := s.CalculateWorkedHours(uuid.New().String(), PeriodMonth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalEntries != 0 || stats.TotalHours != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
	if stats.AverageHoursPerEntry != 0 {
		t.Errorf("average must be 0 with no entries, got %v", stats.AverageHoursPerEntry)
	}
}

func TestCalculateWorkedHours_Rounding(t *testing.T) {
	f := newFakeStore()
	s := newTestService(f, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	employee := uuid.New()

	seedEntry(f, employee, "2025-01-14", 1.111)
	seedEntry(f, employee, "2025-01-14", 2.222)

	stats, err := s.CalculateWorkedHours(employee.String(), PeriodMonth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalHours != 3.33 {
		t.Errorf("expected 3.33 total, got %v", stats.TotalHours)
	}
	if stats.AverageHoursPerEntry != 1.67 {
		t.Errorf("expected 1.67 average, got %v", stats.AverageHoursPerEntry)
	}
	if stats.DailyBreakdown["2025-01-14"] != 3.33 {
		t.Errorf("expected daily sum 3.33, got %v", stats.DailyBreakdown["2025-01-14"])
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 45, 0, 0, time.UTC)

	cases := []struct {
		period Period
		want   string
	}{
		{PeriodWeek, "2025-03-03"},
		{PeriodMonth, "2025-03-01"},
		{PeriodYear, "2025-01-01"},
		{PeriodAll, "1970-01-01"},
	}
	for _, tc := range cases {
		got := periodStart(now, tc.period).Format(models.EntryDateFormat)
		if got != tc.want {
			t.Errorf("periodStart(%s) = %s, want %s", tc.period, got, tc.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(""); err != nil || p != PeriodMonth {
		t.Errorf("empty period should default to month, got %v, %v", p, err)
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("expected error for unknown period")
	}
}
