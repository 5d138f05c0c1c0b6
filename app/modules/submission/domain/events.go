package submissiondomain

import (
	"time"

	"github.com/google/uuid"
)

// Event topics published by the submission module.
const (
	SubmittedTopic = "applications.submitted.v1"
	ReviewedTopic  = "applications.reviewed.v1"
)

// SubmittedPayload announces a new pending submission.
type SubmittedPayload struct {
	SubmissionID    uuid.UUID `json:"submission_id"`
	FormID          uuid.UUID `json:"form_id"`
	FormTitle       string    `json:"form_title"`
	UserID          uuid.UUID `json:"user_id"`
	DiscordUsername string    `json:"discord_username"`
	RobloxUsername  string    `json:"roblox_username"`
	Slot            int       `json:"slot"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// ReviewedPayload announces a review decision.
type ReviewedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	FormID       uuid.UUID `json:"form_id"`
	UserID       uuid.UUID `json:"user_id"`
	Status       Status    `json:"status"`
	ReviewedBy   uuid.UUID `json:"reviewed_by"`
	ReviewedAt   time.Time `json:"reviewed_at"`
	Notified     bool      `json:"notified"`
}
