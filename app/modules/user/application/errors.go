package userservice

import "github.com/skyrden-airlines/portal/app/shared/apperr"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user_not_found", "user not found")

	// ErrAlreadyWhitelisted is returned when adding a Discord id twice.
	ErrAlreadyWhitelisted = apperr.New(apperr.KindConflict, "already_whitelisted", "discord id is already whitelisted")

	// ErrNotWhitelisted is returned when removing an id that is not listed.
	ErrNotWhitelisted = apperr.New(apperr.KindNotFound, "whitelist_entry_not_found", "discord id is not whitelisted")

	// ErrInvalidDiscordID is returned for ids that are not Discord snowflakes.
	ErrInvalidDiscordID = apperr.New(apperr.KindValidation, "invalid_discord_id", "discord id must be a numeric snowflake")

	// ErrNoteTooLong is returned for whitelist notes over 200 characters.
	ErrNoteTooLong = apperr.New(apperr.KindValidation, "note_too_long", "note must be at most 200 characters")
)
