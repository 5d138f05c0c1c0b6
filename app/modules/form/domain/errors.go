package formdomain

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	ErrInvalidField  = apperr.New(apperr.KindValidation, "invalid_field", "invalid field definition")
	ErrInvalidAnswer = apperr.New(apperr.KindValidation, "invalid_answer", "invalid answer")
	ErrMissingAnswer = apperr.New(apperr.KindValidation, "missing_answer", "a required question was not answered")

	ErrInvalidStatus = apperr.New(apperr.KindValidation, "invalid_status", "status must be draft, open or closed")

	// ErrInvalidDeadline is returned for unparseable or past deadlines.
	ErrInvalidDeadline = apperr.New(apperr.KindValidation, "invalid_deadline", "deadline must be a future date")
)
