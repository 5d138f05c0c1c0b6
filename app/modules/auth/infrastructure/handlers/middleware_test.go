package authhandlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
)

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	first := limiter.GetLimiter("10.0.0.1")
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))
	assert.NotSame(t, first, limiter.GetLimiter("10.0.0.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://portal.test/"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "https://portal.test", wantStatus: http.StatusTeapot, wantOrigin: "https://portal.test"},
		{name: "unknown origin", method: http.MethodGet, origin: "https://evil.test", wantStatus: http.StatusTeapot},
		{name: "preflight", method: http.MethodOptions, origin: "https://portal.test", wantStatus: http.StatusNoContent, wantOrigin: "https://portal.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/auth/status", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	t.Run("collects credentials and stores identity", func(t *testing.T) {
		svc := &FakeService{ResolveIdentityFunc: func(context.Context, authservice.Credentials, authservice.SessionMeta) (*authservice.Resolution, error) {
			return &authservice.Resolution{
				Identity:   &authdomain.Identity{UserID: userID, Source: authdomain.SourceCookie},
				NewSession: &authservice.IssuedSession{Token: "rehydrated", ExpiresAt: time.Now().Add(time.Hour)},
			}, nil
		}}
		h := newTestHandlers(svc, nil, false)

		var seen *authdomain.Identity
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = authdomain.IdentityFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "cookie-jwt"})
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
		req.Header.Set("Authorization", "Bearer header-jwt")
		rr := httptest.NewRecorder()
		h.Authenticate(next).ServeHTTP(rr, req)

		require.NotNil(t, seen)
		assert.Equal(t, userID, seen.UserID)
		assert.Equal(t, authservice.Credentials{SessionToken: "stale", CookieToken: "cookie-jwt", BearerToken: "header-jwt"}, svc.LastCreds)
		session := findCookie(rr, SessionCookie)
		require.NotNil(t, session)
		assert.Equal(t, "rehydrated", session.Value)
	})

	t.Run("resolution errors leave the request anonymous", func(t *testing.T) {
		svc := &FakeService{ResolveIdentityFunc: func(context.Context, authservice.Credentials, authservice.SessionMeta) (*authservice.Resolution, error) {
			return nil, errors.New("db down")
		}}
		h := newTestHandlers(svc, nil, false)

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Nil(t, authdomain.IdentityFromContext(r.Context()))
		})
		h.Authenticate(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
	})
}

func TestRequireAuthAndAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name      string
		identity  *authdomain.Identity
		wantAuth  int
		wantAdmin int
	}{
		{name: "anonymous", wantAuth: http.StatusUnauthorized, wantAdmin: http.StatusUnauthorized},
		{name: "applicant", identity: &authdomain.Identity{UserID: uuid.New()}, wantAuth: http.StatusOK, wantAdmin: http.StatusForbidden},
		{name: "admin", identity: &authdomain.Identity{UserID: uuid.New(), IsAdmin: true}, wantAuth: http.StatusOK, wantAdmin: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newReq := func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/admin/forms", nil)
				if tt.identity != nil {
					req = req.WithContext(authdomain.WithIdentity(req.Context(), tt.identity))
				}
				return req
			}

			rr := httptest.NewRecorder()
			RequireAuth(ok).ServeHTTP(rr, newReq())
			assert.Equal(t, tt.wantAuth, rr.Code)

			rr = httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(rr, newReq())
			assert.Equal(t, tt.wantAdmin, rr.Code)
		})
	}
}
