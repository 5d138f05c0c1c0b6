package submissionservice

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	ErrSubmissionNotFound = apperr.New(apperr.KindNotFound, "submission_not_found", "submission not found")
	ErrFormNotFound       = apperr.New(apperr.KindNotFound, "form_not_found", "form not found")

	// ErrFormClosed is returned for drafts, closed forms and passed deadlines.
	ErrFormClosed = apperr.New(apperr.KindValidation, "form_closed", "this form is not accepting submissions")

	ErrRobloxRequired     = apperr.New(apperr.KindForbidden, "roblox_required", "link your Roblox account before applying")
	ErrLimitReached       = apperr.New(apperr.KindConflict, "application_limit_reached", "you have reached the application limit for this form")
	ErrAlreadyReviewed    = apperr.New(apperr.KindConflict, "already_reviewed", "submission has already been reviewed")
	ErrTemplateIDRequired = apperr.New(apperr.KindValidation, "template_id_required", "templateId is required")
)
