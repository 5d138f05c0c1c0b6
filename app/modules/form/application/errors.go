package formservice

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	// ErrFormNotFound is returned for unknown forms, and for forms an
	// applicant cannot see.
	ErrFormNotFound = apperr.New(apperr.KindNotFound, "form_not_found", "form not found")

	ErrTitleRequired = apperr.New(apperr.KindValidation, "title_required", "a form needs a title")

	ErrInvalidLimit = apperr.New(apperr.KindValidation, "invalid_application_limit", "application limit must be a positive number")
)
