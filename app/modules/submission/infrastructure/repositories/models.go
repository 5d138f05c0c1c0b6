package submissiondb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
)

// Response is one applicant's answers to a form. Slot numbers a user's
// submissions to one form from 1; (form_id, user_id, slot) is unique.
type Response struct {
	bun.BaseModel `bun:"table:application_responses,alias:ar"`

	ID                  uuid.UUID               `bun:"id,pk,type:varchar(36)"`
	FormID              uuid.UUID               `bun:"form_id,notnull,type:varchar(36)"`
	UserID              uuid.UUID               `bun:"user_id,notnull,type:varchar(36)"`
	Slot                int                     `bun:"slot,notnull,default:1"`
	Responses           formdomain.Responses    `bun:"responses,notnull"`
	Status              submissiondomain.Status `bun:"status,notnull,default:'pending'"`
	AdminFeedback       *string                 `bun:"admin_feedback,nullzero"`
	NotificationMessage *string                 `bun:"notification_message,nullzero"`
	ReviewedBy          *uuid.UUID              `bun:"reviewed_by,type:varchar(36),nullzero"`
	ReviewedAt          *time.Time              `bun:"reviewed_at,nullzero"`
	NotificationSent    bool                    `bun:"notification_sent,notnull,default:false"`
	NotificationSentAt  *time.Time              `bun:"notification_sent_at,nullzero"`
	CreatedAt           time.Time               `bun:"created_at,notnull"`
	UpdatedAt           time.Time               `bun:"updated_at,notnull"`

	Form     *formdb.Form `bun:"rel:belongs-to,join:form_id=id"`
	User     *userdb.User `bun:"rel:belongs-to,join:user_id=id"`
	Reviewer *userdb.User `bun:"rel:belongs-to,join:reviewed_by=id"`
}

// Review is the decision written by Review.
type Review struct {
	Status              submissiondomain.Status
	Feedback            string
	NotificationMessage *string
	ReviewedBy          uuid.UUID
	ReviewedAt          time.Time
}

// Filter narrows List. Nil members match everything.
type Filter struct {
	FormID *uuid.UUID
	Status *submissiondomain.Status
}

// Applicant returns the joined applicant, or nil when it was not loaded.
func (r *Response) Applicant() *userdb.User {
	if r.User == nil || r.User.ID == uuid.Nil {
		return nil
	}
	return r.User
}

// ReviewerUser returns the joined reviewer, or nil for unreviewed rows.
func (r *Response) ReviewerUser() *userdb.User {
	if r.Reviewer == nil || r.Reviewer.ID == uuid.Nil {
		return nil
	}
	return r.Reviewer
}

// FormTitle returns the joined form title, or "" when the form is gone.
func (r *Response) FormTitle() string {
	if r.Form == nil {
		return ""
	}
	return r.Form.Title
}
