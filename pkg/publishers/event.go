package publishers

import (
	"time"

	"github.com/samvad-hq/placeholder-client/internal/domain"
)

// Event represents a check status change published downstream.
type Event struct {
	CheckID        string    `json:"check_id"`
	Operation      string    `json:"operation"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	StatusCode     int       `json:"status_code"`
	URL            string    `json:"url,omitempty"`
	Error          string    `json:"error,omitempty"`
	Failures       []string  `json:"failures,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	ElapsedMs      int64     `json:"elapsed_ms"`
	CheckedAt      time.Time `json:"checked_at"`
}

// NewEvent constructs an Event for the given check result. previous is the
// last recorded status, empty when the check was never seen.
func NewEvent(res domain.CheckResult, previous string) Event {
	checkedAt := res.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}
	return Event{
		CheckID:        res.CheckID,
		Operation:      res.Operation,
		Status:         res.Status,
		PreviousStatus: previous,
		StatusCode:     res.StatusCode,
		URL:            res.URL,
		Error:          res.Error,
		Failures:       res.Failures,
		Detail:         res.Detail,
		ElapsedMs:      res.Elapsed.Milliseconds(),
		CheckedAt:      checkedAt.UTC(),
	}
}

// attributes are the message attributes queue-style sinks attach for filtering.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"check_id": e.CheckID,
		"status":   e.Status,
	}
}
