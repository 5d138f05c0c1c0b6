package authhandlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	"github.com/skyrden-airlines/portal/app/shared/apperr"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle IP entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is an IP-based rate limiter that prunes stale entries inline.
type IPRateLimiter struct {
	ips map[string]*ipEntry
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipEntry),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns the limiter for ip, pruning stale entries when the map
// exceeds cleanupThreshold.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.ips) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range i.ips {
			if e.lastSeen.Before(cutoff) {
				delete(i.ips, k)
			}
		}
	}

	e, exists := i.ips[ip]
	if !exists {
		e = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware rate limits requests per client IP.
func RateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.GetLimiter(ip).Allow() {
				httpjson.Write(w, http.StatusTooManyRequests, httpjson.ErrorBody{
					Error: "too many requests",
					Code:  "rate_limited",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware sets credentialed CORS headers for the configured origins.
// With no origins configured it only short-circuits preflight requests.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func (h *AuthHandlers) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, err := h.service.ResolveIdentity(ctx, authservice.Credentials{
			SessionToken: cookieValue(r, SessionCookie),
			CookieToken:  cookieValue(r, AuthCookie),
			BearerToken:  bearerToken(r),
		}, sessionMeta(r))
		if err != nil {
			h.logger.WarnContext(ctx, "Identity resolution failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			next.ServeHTTP(w, r)
			return
		}

		if res.NewSession != nil {
			h.setSessionCookie(w, res.NewSession.Token, res.NewSession.ExpiresAt)
			ctx = context.WithValue(ctx, issuedSessionKey{}, res.NewSession.Token)
		}
		if res.Identity != nil {
			ctx = authdomain.WithIdentity(ctx, res.Identity)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type issuedSessionKey struct{}

// issuedSession returns the session token Authenticate minted for this
// request, if any. The client has not seen it yet, so it is absent from the
// request cookies.
func issuedSession(ctx context.Context) string {
	token, _ := ctx.Value(issuedSessionKey{}).(string)
	return token
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authdomain.IdentityFromContext(r.Context()) == nil {
			httpjson.WriteError(w, r, nil, apperr.ErrAuthenticationRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := authdomain.IdentityFromContext(r.Context())
		switch {
		case id == nil:
			httpjson.WriteError(w, r, nil, apperr.ErrAuthenticationRequired)
		case !id.IsAdmin:
			httpjson.WriteError(w, r, nil, apperr.ErrAdminRequired)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
