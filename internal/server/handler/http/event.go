package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sgshs/eventportal/internal/models"
)

// NoticeBoard is the slice of the announcement service the event
// handler needs for the home view.
type NoticeBoard interface {
	// Latest returns the newest notice, if any.
	Latest() (models.Announcement, bool)
}

// EventHandler serves the public event summary: name, countdown, and
// the latest notice.
type EventHandler struct {
	// Board supplies the latest notice preview.
	Board NoticeBoard
	// Name is the event's display name.
	Name string
	// At is when the event starts.
	At time.Time

	// Now is injectable for tests; defaults to time.Now when nil.
	Now func() time.Time
}

// Countdown is the time remaining until the event.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Info handles GET /api/event. Once the event date has passed, "today"
// is reported instead of a countdown.
func (h *EventHandler) Info(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	resp := map[string]any{
		"event":     h.Name,
		"starts_at": h.At.Format(time.RFC3339),
	}

	diff := h.At.Sub(now())
	if diff <= 0 {
		resp["today"] = true
	} else {
		total := int(diff.Seconds())
		resp["countdown"] = Countdown{
			Days:    total / 86400,
			Hours:   total % 86400 / 3600,
			Minutes: total % 3600 / 60,
			Seconds: total % 60,
		}
	}

	if latest, ok := h.Board.Latest(); ok {
		resp["latest_announcement"] = latest
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
