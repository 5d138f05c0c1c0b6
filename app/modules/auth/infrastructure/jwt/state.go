package authjwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
)

type stateClaims struct {
	jwt.RegisteredClaims
	Nonce     string `json:"nonce"`
	Redirect  string `json:"redirect,omitempty"`
	UserID    string `json:"uid,omitempty"`
	DiscordID string `json:"did,omitempty"`
}

type stateCodec struct {
	secret []byte
}

// NewStateCodec returns a codec that HMAC-signs OAuth state with secret. The
// purpose travels as the audience claim.
func NewStateCodec(secret string) StateCodec {
	return &stateCodec{secret: []byte(secret)}
}

func (c *stateCodec) Sign(state authdomain.OAuthState) (string, error) {
	claims := &stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{string(state.Purpose)},
			ExpiresAt: jwt.NewNumericDate(state.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Nonce:     state.Nonce,
		Redirect:  state.Redirect,
		UserID:    state.UserID,
		DiscordID: state.DiscordID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

func (c *stateCodec) Parse(raw string, purpose authdomain.StatePurpose) (*authdomain.OAuthState, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}

	token, err := jwt.ParseWithClaims(raw, &stateClaims{}, keyFunc,
		jwt.WithIssuer(issuer),
		jwt.WithAudience(string(purpose)),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenInvalidAudience) {
			return nil, ErrWrongPurpose
		}
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid || claims.Nonce == "" {
		return nil, ErrInvalidToken
	}

	return &authdomain.OAuthState{
		Purpose:   purpose,
		Nonce:     claims.Nonce,
		Redirect:  claims.Redirect,
		UserID:    claims.UserID,
		DiscordID: claims.DiscordID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
