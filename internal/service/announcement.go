package service

import (
	"time"

	"github.com/sgshs/eventportal/internal/models"
	"github.com/sgshs/eventportal/internal/store"
)

// AnnouncementSchema is the canonical column order of the announcement
// store.
var AnnouncementSchema = []string{"Timestamp", "Title", "Message", "PostedBy"}

// defaultAuthor is used when a notice is posted without an author name.
const defaultAuthor = "Admin"

// AnnouncementService maintains the notice board. Notices are
// append-only and visible to every authenticated user; posting is an
// admin-gated operation enforced at the HTTP boundary.
type AnnouncementService struct {
	store *store.Store

	now func() time.Time
}

// NewAnnouncementService constructs an AnnouncementService over the
// given store.
func NewAnnouncementService(s *store.Store) *AnnouncementService {
	return &AnnouncementService{store: s, now: time.Now}
}

// Post stamps and appends a notice. An empty author defaults to
// "Admin".
func (s *AnnouncementService) Post(title, message, postedBy string) error {
	if postedBy == "" {
		postedBy = defaultAuthor
	}
	return s.store.Append([]string{
		s.now().Format(time.RFC3339),
		title,
		message,
		postedBy,
	})
}

// List returns every notice in posting order.
func (s *AnnouncementService) List() []models.Announcement {
	rows := s.store.All()
	out := make([]models.Announcement, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Announcement{
			Timestamp: r[0],
			Title:     r[1],
			Message:   r[2],
			PostedBy:  r[3],
		})
	}
	return out
}

// Latest returns the most recent notice, if any.
func (s *AnnouncementService) Latest() (models.Announcement, bool) {
	all := s.List()
	if len(all) == 0 {
		return models.Announcement{}, false
	}
	return all[len(all)-1], true
}
