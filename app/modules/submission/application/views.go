package submissionservice

import (
	"sort"
	"time"

	"github.com/google/uuid"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
)

// SubmissionView is what an applicant sees of their own submission.
type SubmissionView struct {
	ID            uuid.UUID               `json:"id"`
	FormID        uuid.UUID               `json:"form_id"`
	FormTitle     string                  `json:"form_title"`
	Slot          int                     `json:"slot"`
	Status        submissiondomain.Status `json:"status"`
	Responses     formdomain.Responses    `json:"responses"`
	AdminFeedback *string                 `json:"admin_feedback"`
	ReviewedAt    *time.Time              `json:"reviewed_at"`
	CreatedAt     time.Time               `json:"created_at"`
}

// PersonView is a user as joined into admin listings.
type PersonView struct {
	ID              uuid.UUID `json:"id"`
	DiscordID       string    `json:"discord_id"`
	DiscordUsername string    `json:"discord_username"`
	RobloxUsername  string    `json:"roblox_username,omitempty"`
}

// AdminSubmissionView is a submission with applicant, form and reviewer.
type AdminSubmissionView struct {
	SubmissionView
	Applicant           *PersonView `json:"applicant"`
	Reviewer            *PersonView `json:"reviewer"`
	NotificationMessage *string     `json:"notification_message"`
	NotificationSent    bool        `json:"notification_sent"`
	NotificationSentAt  *time.Time  `json:"notification_sent_at"`

	fieldOrder []string
}

func (v *AdminSubmissionView) SortDate() time.Time                 { return v.CreatedAt }
func (v *AdminSubmissionView) SortStatus() submissiondomain.Status { return v.Status }

func (v *AdminSubmissionView) SortApplicant() string {
	if v.Applicant == nil {
		return ""
	}
	return v.Applicant.DiscordUsername
}

// NewSubmissionView projects r for its owner.
func NewSubmissionView(r *submissiondb.Response) *SubmissionView {
	return &SubmissionView{
		ID:            r.ID,
		FormID:        r.FormID,
		FormTitle:     r.FormTitle(),
		Slot:          r.Slot,
		Status:        r.Status,
		Responses:     r.Responses,
		AdminFeedback: r.AdminFeedback,
		ReviewedAt:    r.ReviewedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// NewAdminSubmissionView projects r for reviewers.
func NewAdminSubmissionView(r *submissiondb.Response) *AdminSubmissionView {
	v := &AdminSubmissionView{
		SubmissionView:      *NewSubmissionView(r),
		NotificationMessage: r.NotificationMessage,
		NotificationSent:    r.NotificationSent,
		NotificationSentAt:  r.NotificationSentAt,
	}
	if r.Form != nil {
		for _, f := range r.Form.Fields {
			v.fieldOrder = append(v.fieldOrder, f.ID)
		}
	}
	if u := r.Applicant(); u != nil {
		v.Applicant = &PersonView{ID: u.ID, DiscordID: u.DiscordID, DiscordUsername: u.DiscordUsername, RobloxUsername: u.RobloxName()}
	}
	if u := r.ReviewerUser(); u != nil {
		v.Reviewer = &PersonView{ID: u.ID, DiscordID: u.DiscordID, DiscordUsername: u.DiscordUsername}
	}
	return v
}

// answerOrder returns the answered field ids in form order, followed by
// answers to fields the form no longer has.
func (v *AdminSubmissionView) answerOrder() []string {
	out := make([]string, 0, len(v.Responses))
	seen := make(map[string]bool, len(v.Responses))
	for _, id := range v.fieldOrder {
		if _, ok := v.Responses[id]; ok {
			out = append(out, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range v.Responses {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
