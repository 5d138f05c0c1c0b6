package submissionservice

import (
	"context"

	"github.com/google/uuid"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
)

// Service manages application submissions and their review.
type Service interface {
	// Submit stores a pending submission for userID.
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*SubmissionView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*SubmissionView, error)

	AdminList(ctx context.Context, query AdminQuery) ([]*AdminSubmissionView, error)
	// Export renders AdminList as an XLSX workbook.
	Export(ctx context.Context, query AdminQuery) ([]byte, error)

	// Review decides a pending submission. Reviewed submissions are final.
	Review(ctx context.Context, reviewerID uuid.UUID, input ReviewInput) (*ReviewResult, error)
}

// Notifier delivers the review outcome to the applicant.
type Notifier interface {
	Notify(ctx context.Context, submissionID uuid.UUID, message string) error
}

// SubmitInput is the applicant's payload.
type SubmitInput struct {
	TemplateID string               `json:"templateId"`
	Responses  formdomain.Responses `json:"responses"`
}

// AdminQuery filters and orders the admin list. Empty members mean all.
type AdminQuery struct {
	FormID string
	Status string
	Sort   string
	Order  string
}

// ReviewInput is the admin's decision.
type ReviewInput struct {
	SubmissionID        string  `json:"submissionId"`
	Status              string  `json:"status"`
	Feedback            *string `json:"feedback"`
	NotificationMessage *string `json:"notificationMessage"`
	SendNotification    bool    `json:"sendNotification"`
}

// ReviewResult reports the stored decision and, when requested, the
// delivery outcome.
type ReviewResult struct {
	Success      bool                 `json:"success"`
	Submission   *AdminSubmissionView `json:"submission"`
	Notification *NotificationOutcome `json:"notification,omitempty"`
}

// NotificationOutcome is the result of an immediate send.
type NotificationOutcome struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}
