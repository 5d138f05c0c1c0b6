package authservice

import "github.com/skyrden-airlines/portal/app/shared/apperr"

// Codes double as the error= value on OAuth failure redirects.
var (
	// ErrInvalidState is returned when the OAuth state is missing, tampered,
	// expired, issued for another flow, or does not match the nonce cookie.
	ErrInvalidState = apperr.New(apperr.KindValidation, "invalid_state", "invalid or expired oauth state")

	// ErrExchangeFailed is returned when the provider rejects the code.
	ErrExchangeFailed = apperr.New(apperr.KindUpstream, "exchange_failed", "could not complete sign-in with the provider")

	// ErrProfileFailed is returned when the provider profile cannot be read.
	ErrProfileFailed = apperr.New(apperr.KindUpstream, "profile_failed", "could not read the provider profile")

	// ErrProviderUnavailable is returned for providers without credentials.
	ErrProviderUnavailable = apperr.New(apperr.KindUpstream, "provider_unavailable", "this sign-in provider is not configured")

	// ErrInvalidToken is returned when a token-login token fails validation.
	ErrInvalidToken = apperr.New(apperr.KindUnauthenticated, "invalid_token", "invalid or expired token")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = apperr.New(apperr.KindValidation, "missing_token", "token is required")
)
