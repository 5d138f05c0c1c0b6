package submissiondomain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the review state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"

	// legacyDenied is how one historical schema spelled rejected.
	legacyDenied = "denied"
)

// ParseStatus accepts the three states plus the legacy "denied".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusApproved):
		return StatusApproved, nil
	case string(StatusRejected), legacyDenied:
		return StatusRejected, nil
	}
	return "", ErrInvalidStatus.WithMessage(fmt.Sprintf("unknown status %q", s))
}

// ParseDecision parses a review outcome. Only approved and rejected are
// decisions; pending is not.
func ParseDecision(s string) (Status, error) {
	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	if status == StatusPending {
		return "", ErrInvalidStatus.WithMessage("status must be approved or rejected")
	}
	return status, nil
}

// Reviewed reports whether a decision has been recorded.
func (s Status) Reviewed() bool {
	return s == StatusApproved || s == StatusRejected
}

// Label is the capitalised status used in messages.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidStatus
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scan normalises legacy values read from the database.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = ""
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
