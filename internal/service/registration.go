package service

import (
	"time"

	"github.com/sgshs/eventportal/internal/models"
	"github.com/sgshs/eventportal/internal/store"
)

// RegistrationSchema is the canonical column order of the registration
// store. It never changes across appends.
var RegistrationSchema = []string{
	"Timestamp", "Name", "Class", "Section", "Item", "Contact", "Address", "Bus", "Status",
}

// RegistrationService records participation entries. Entries are
// append-only; the status field is written once as "Pending" and is
// never updated by this service.
type RegistrationService struct {
	store *store.Store

	// now is injectable for tests.
	now func() time.Time
}

// NewRegistrationService constructs a RegistrationService over the
// given store.
func NewRegistrationService(s *store.Store) *RegistrationService {
	return &RegistrationService{store: s, now: time.Now}
}

// Submit stamps the entry with the current time, forces its status to
// "Pending", and appends it. Empty fields are acceptable.
func (s *RegistrationService) Submit(reg models.Registration) error {
	reg.Timestamp = s.now().Format(time.RFC3339)
	reg.Status = models.RegistrationStatusPending

	return s.store.Append([]string{
		reg.Timestamp,
		reg.Name,
		reg.Class,
		reg.Section,
		reg.Item,
		reg.Contact,
		reg.Address,
		reg.Bus,
		reg.Status,
	})
}

// List returns every registration in submission order.
func (s *RegistrationService) List() []models.Registration {
	rows := s.store.All()
	out := make([]models.Registration, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Registration{
			Timestamp: r[0],
			Name:      r[1],
			Class:     r[2],
			Section:   r[3],
			Item:      r[4],
			Contact:   r[5],
			Address:   r[6],
			Bus:       r[7],
			Status:    r[8],
		})
	}
	return out
}

// Export returns the registration store as CSV, header included.
func (s *RegistrationService) Export() ([]byte, error) {
	return s.store.Export()
}
