package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sgshs/eventportal/internal/models"
	"github.com/sgshs/eventportal/internal/store"
)

func newRegistrationService(t *testing.T) *RegistrationService {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "registrations.csv"), RegistrationSchema)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := NewRegistrationService(s)
	svc.now = func() time.Time { return time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegistrationSubmit_StampsAndForcesPending(t *testing.T) {
	svc := newRegistrationService(t)

	err := svc.Submit(models.Registration{
		Name:    "Meera",
		Class:   "7",
		Section: "B",
		Item:    "Dance",
		Contact: "9876543210",
		Address: "12, Lake Road",
		Bus:     "Yes",
		// spoofed values the service must override
		Timestamp: "yesterday",
		Status:    "Approved",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	list := svc.List()
	if len(list) != 1 {
		t.Fatalf("got %d registrations; want 1", len(list))
	}
	got := list[0]
	if got.Timestamp != "2025-12-01T10:00:00Z" {
		t.Errorf("timestamp = %q; want server stamp", got.Timestamp)
	}
	if got.Status != models.RegistrationStatusPending {
		t.Errorf("status = %q; want %q", got.Status, models.RegistrationStatusPending)
	}
	if got.Name != "Meera" || got.Item != "Dance" || got.Bus != "Yes" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestRegistrationList_PreservesOrder(t *testing.T) {
	svc := newRegistrationService(t)

	names := []string{"A", "B", "C"}
	for _, n := range names {
		if err := svc.Submit(models.Registration{Name: n}); err != nil {
			t.Fatalf("Submit(%q): %v", n, err)
		}
	}

	list := svc.List()
	if len(list) != len(names) {
		t.Fatalf("got %d registrations; want %d", len(list), len(names))
	}
	for i, n := range names {
		if list[i].Name != n {
			t.Errorf("list[%d].Name = %q; want %q", i, list[i].Name, n)
		}
	}
}

func TestRegistrationSubmit_EmptyFieldsAccepted(t *testing.T) {
	svc := newRegistrationService(t)

	if err := svc.Submit(models.Registration{}); err != nil {
		t.Fatalf("Submit of empty entry returned error: %v", err)
	}
	got := svc.List()[0]
	if got.Status != models.RegistrationStatusPending {
		t.Errorf("status = %q; want %q", got.Status, models.RegistrationStatusPending)
	}
}

func TestRegistrationExport(t *testing.T) {
	svc := newRegistrationService(t)
	if err := svc.Submit(models.Registration{Name: "Meera", Bus: "No"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	data, err := svc.Export()
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	want := "Timestamp,Name,Class,Section,Item,Contact,Address,Bus,Status\n" +
		"2025-12-01T10:00:00Z,Meera,,,,,,No,Pending\n"
	if string(data) != want {
		t.Errorf("Export = %q; want %q", data, want)
	}
}
