package notificationservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
)

// Service sends review outcomes to applicants over Discord.
type Service interface {
	// Notify sends the DM for one reviewed submission and marks it sent.
	// An empty message falls back to the stored message, then the template.
	Notify(ctx context.Context, submissionID uuid.UUID, message string) error
	// SendAllPending notifies every reviewed, unsent submission in turn.
	SendAllPending(ctx context.Context) (*BulkResult, error)
	ListPending(ctx context.Context) ([]*PendingView, error)

	GetConfig(ctx context.Context) notificationdomain.ConfigView
	UpdateConfig(ctx context.Context, update notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error)

	// AlertStaff posts a new-submission notice to the staff channel, if set.
	AlertStaff(ctx context.Context, payload submissiondomain.SubmittedPayload) error
}

// BulkResult aggregates SendAllPending.
type BulkResult struct {
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
	Failures     []BulkFailure `json:"failures"`
}

// BulkFailure is one submission that could not be notified.
type BulkFailure struct {
	SubmissionID uuid.UUID `json:"submissionId"`
	Error        string    `json:"error"`
}

// PendingView is a reviewed submission waiting for its DM.
type PendingView struct {
	SubmissionID    uuid.UUID               `json:"submissionId"`
	FormTitle       string                  `json:"formTitle"`
	DiscordID       string                  `json:"discordId"`
	DiscordUsername string                  `json:"discordUsername"`
	Status          submissiondomain.Status `json:"status"`
	ReviewedAt      *time.Time              `json:"reviewedAt"`
}
