package notificationdomain

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	ErrBotTokenRequired = apperr.New(apperr.KindValidation, "bot_token_required", "a bot token is required to enable notifications")
	ErrInvalidChannel   = apperr.New(apperr.KindValidation, "invalid_channel_id", "staff channel id must be a numeric snowflake")
)
