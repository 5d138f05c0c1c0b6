package notificationservice

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	ErrNotificationsDisabled = apperr.New(apperr.KindUpstream, "notifications_disabled", "discord notifications are disabled")
	ErrDeliveryFailed        = apperr.New(apperr.KindUpstream, "notification_failed", "failed to deliver discord notification")
	ErrSubmissionNotFound    = apperr.New(apperr.KindNotFound, "submission_not_found", "submission not found")
	ErrNotReviewed           = apperr.New(apperr.KindValidation, "not_reviewed", "only reviewed submissions can be notified")
)
