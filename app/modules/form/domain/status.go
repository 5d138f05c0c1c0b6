package formdomain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a form.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ParseStatus accepts draft, open or closed. "active" is read as open.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return StatusDraft, nil
	case "open", "active":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	}
	return "", ErrInvalidStatus.WithMessage(fmt.Sprintf("unknown form status %q", s))
}

// StatusFromActive maps the legacy is_active flag.
func StatusFromActive(active bool) Status {
	if active {
		return StatusOpen
	}
	return StatusDraft
}

// Accepting reports whether a form in status with deadline takes
// submissions at now.
func Accepting(status Status, deadline *time.Time, now time.Time) bool {
	if status != StatusOpen {
		return false
	}
	return deadline == nil || now.Before(*deadline)
}
