package submissiondomain

import "github.com/skyrden-airlines/portal/app/shared/apperr"

// ErrInvalidStatus is returned for unknown status or decision values.
var ErrInvalidStatus = apperr.New(apperr.KindValidation, "invalid_status", "invalid submission status")
