package timetrack

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/models"
)

// fakeStore is an in-memory AssignmentStore + EntryStore.
type fakeStore struct {
	assignments map[string]*models.TaskAssignment
	entries     []models.TimeEntry
	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{assignments: make(map[string]*models.TaskAssignment)}
}

func (f *fakeStore) GetTaskAssignment(id string) (*models.TaskAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) FindEntryByAssignment(assignmentID string) (*models.TimeEntry, error) {
	for i := range f.entries {
		if f.entries[i].TaskAssignmentID.String() == assignmentID {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertTimeEntry(entry models.TimeEntry) (*models.TimeEntry, error) {
	f.insertCalls++
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeStore) ListApprovedEntriesSince(employeeID, since string) ([]models.TimeEntry, error) {
	var result []models.TimeEntry
	for _, e := range f.entries {
		// ISO dates compare correctly as strings.
		if e.EmployeeID.String() == employeeID && e.Status == models.TimeEntryApproved && e.EntryDate >= since {
			result = append(result, e)
		}
	}
	return result, nil
}

func newTestService(f *fakeStore, now time.Time) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	s := NewService(f, f, log)
	s.now = func() time.Time { return now }
	return s
}

func seedAssignment(f *fakeStore, estimatedHours *float64) *models.TaskAssignment {
	assignment := &models.TaskAssignment{
		ID:         uuid.New(),
		AssigneeID: uuid.New(),
		Status:     models.AssignmentCompleted,
		Template: &models.TaskTemplate{
			ID:             uuid.New(),
			Title:          "Demo Task",
			EstimatedHours: estimatedHours,
		},
	}
	f.assignments[assignment.ID.String()] = assignment
	return assignment
}

func hoursPtr(h float64) *float64 { return &h }

func TestCreateTimeEntry_HappyPath(t *testing.T) {
	f := newFakeStore()
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	s := newTestService(f, now)
	assignment := seedAssignment(f, hoursPtr(3.5))
	admin := uuid.New()

	entry, err := s.CreateTimeEntryForApprovedTask(assignment.ID.String(), admin.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected a time entry, got nil")
	}
	if entry.Hours != 3.5 {
		t.Errorf("expected hours 3.5, got %v", entry.Hours)
	}
	if entry.EmployeeID != assignment.AssigneeID {
		t.Errorf("expected employee %s, got %s", assignment.AssigneeID, entry.EmployeeID)
	}
	if entry.Status != models.TimeEntryApproved {
		t.Errorf("expected status approved, got %s", entry.Status)
	}
	if entry.EntryDate != "2025-03-10" {
		t.Errorf("expected date-only entry date 2025-03-10, got %s", entry.EntryDate)
	}
	if entry.ApprovedBy == nil || *entry.ApprovedBy != admin {
		t.Errorf("expected approved_by %s, got %v", admin, entry.ApprovedBy)
	}
}

func TestCreateTimeEntry_Idempotent(t *testing.T) {
	f := newFakeStore()
	s := newTestService(f, time.Now())
	assignment := seedAssignment(f, hoursPtr(3.5))
	admin := uuid.New().String()

	first, err := s.CreateTimeEntryForApprovedTask(assignment.ID.String(), admin)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := s.CreateTimeEntryForApprovedTask(assignment.ID.String(), admin)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same entry on repeat approval, got %s and %s", first.ID, second.ID)
	}
	if f.insertCalls != 1 {
		t.Errorf("expected exactly one insert, got %d", f.insertCalls)
	}
	if len(f.entries) != 1 {
		t.Errorf("expected exactly one stored entry, got %d", len(f.entries))
	}
}

func TestCreateTimeEntry_NoEstimatedHoursSkips(t *testing.T) {
	for name, hours := range map[string]*float64{"nil": nil, "zero": hoursPtr(0)} {
		t.Run(name, func(t *testing.T) {
			f := newFakeStore()
			s := newTestService(f, time.Now())
			assignment := seedAssignment(f, hours)

			entry, err := s.CreateTimeEntryForApprovedTask(assignment.ID.String(), uuid.New().String())
			if err != nil {
				t.Fatalf("skip must not be an error: %v", err)
			}
			if entry != nil {
				t.Errorf("expected nil entry, got %+v", entry)
			}
			if f.insertCalls != 0 {
				t.Errorf("expected no insert, got %d", f.insertCalls)
			}
		})
	}
}

func TestCreateTimeEntry_AssignmentNotFound(t *testing.T) {
	f := newFakeStore()
	s := newTestService(f, time.Now())

	_, err := s.CreateTimeEntryForApprovedTask(uuid.New().String(), uuid.New().String())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
