package authjwt

import (
	"time"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT token for the given claims.
	GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}

// StateCodec signs and verifies OAuth state parameters.
type StateCodec interface {
	Sign(state authdomain.OAuthState) (string, error)
	Parse(raw string, purpose authdomain.StatePurpose) (*authdomain.OAuthState, error)
}
