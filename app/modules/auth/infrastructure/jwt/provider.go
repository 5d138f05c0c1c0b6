package authjwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
)

const issuer = "skyrden-portal"

// portalClaims represents the JWT claims structure.
type portalClaims struct {
	jwt.RegisteredClaims
	DiscordID      string `json:"discord_id,omitempty"`
	Username       string `json:"username"`
	Admin          bool   `json:"admin"`
	RobloxUsername string `json:"roblox_username,omitempty"`
}

// provider implements the Provider interface.
type provider struct {
	secret []byte
}

// NewProvider creates a new JWT provider.
func NewProvider(secret string) Provider {
	return &provider{
		secret: []byte(secret),
	}
}

// GenerateToken creates a signed JWT token from the given claims.
func (p *provider) GenerateToken(domainClaims *authdomain.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &portalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   domainClaims.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		DiscordID:      domainClaims.DiscordID,
		Username:       domainClaims.Username,
		Admin:          domainClaims.IsAdmin,
		RobloxUsername: domainClaims.RobloxUsername,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the domain claims if valid.
func (p *provider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &portalClaims{}, p.keyFunc, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*portalClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	domainClaims := &authdomain.Claims{
		UserID:         userID,
		DiscordID:      claims.DiscordID,
		Username:       claims.Username,
		IsAdmin:        claims.Admin,
		RobloxUsername: claims.RobloxUsername,
	}
	if claims.ExpiresAt != nil {
		domainClaims.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		domainClaims.IssuedAt = claims.IssuedAt.Time
	}

	return domainClaims, nil
}

func (p *provider) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidSignature
	}
	return p.secret, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
		return ErrInvalidSignature
	default:
		return ErrInvalidToken
	}
}
