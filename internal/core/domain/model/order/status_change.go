package order

import (
	"time"

	"orderdesk/internal/pkg/errs"
)

// StatusChange is one entry of the append-only status history: a status the
// order entered and the moment it entered it.
type StatusChange struct {
	status    Status
	timestamp time.Time
}

// NewStatusChange creates a validated history entry.
func NewStatusChange(status Status, timestamp time.Time) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if timestamp.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("status change timestamp")
	}
	return StatusChange{status: status, timestamp: timestamp}, nil
}

// Status returns the status the order entered.
func (c StatusChange) Status() Status {
	return c.status
}

// Timestamp returns when the order entered the status.
func (c StatusChange) Timestamp() time.Time {
	return c.timestamp
}
