package authhandlers

import (
	"net/http"
	"time"
)

const (
	AuthCookie    = "skyrden_auth"
	SessionCookie = "skyrden_session"
	NonceCookie   = "skyrden_oauth_nonce"

	nonceCookieTTL  = 10 * time.Minute
	nonceCookiePath = "/api/auth"
)

func (h *AuthHandlers) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	// Cross-site front ends only receive the cookie with SameSite=None, which
	// browsers accept on Secure cookies only.
	if h.config.SecureCookies {
		c.SameSite = http.SameSiteNoneMode
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl)
	} else {
		c.MaxAge = -1
	}
	return c
}

func (h *AuthHandlers) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, h.cookie(AuthCookie, token, "/", h.config.TokenTTL))
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, h.cookie(SessionCookie, token, "/", time.Until(expiresAt)))
}

func (h *AuthHandlers) setNonceCookie(w http.ResponseWriter, nonce string) {
	http.SetCookie(w, h.cookie(NonceCookie, nonce, nonceCookiePath, nonceCookieTTL))
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, h.cookie(name, "", path, 0))
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
