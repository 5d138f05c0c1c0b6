package authhandlers

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	authservice "github.com/skyrden-airlines/portal/app/modules/auth/application"
	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	"github.com/skyrden-airlines/portal/app/shared/apperr"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

// redirectCodes are the error= values the front end knows how to render.
var redirectCodes = map[string]bool{
	"access_denied":   true,
	"invalid_state":   true,
	"exchange_failed": true,
	"profile_failed":  true,
	"server_error":    true,
}

// StatusResponse is the body of /status and /token-login.
type StatusResponse struct {
	Authenticated bool                  `json:"authenticated"`
	User          *userservice.UserView `json:"user,omitempty"`
}

type tokenLoginRequest struct {
	Token string `json:"token"`
}

func sessionMeta(r *http.Request) authservice.SessionMeta {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return authservice.SessionMeta{IPAddress: ip, UserAgent: r.UserAgent()}
}

func (h *AuthHandlers) frontend(path string, query url.Values) string {
	target := h.config.FrontendURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// redirectError sends the browser back to the login page with an error code.
func (h *AuthHandlers) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	code := "server_error"
	if ae, ok := apperr.As(err); ok && redirectCodes[ae.Code] {
		code = ae.Code
	}
	if code == "server_error" {
		h.logger.ErrorContext(r.Context(), "OAuth flow failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	} else {
		h.logger.WarnContext(r.Context(), "OAuth flow rejected",
			slog.String("path", r.URL.Path),
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, h.frontend("/login", url.Values{"error": {code}}), http.StatusFound)
}

// providerDenied handles the error= parameter a provider adds when the user
// cancels the consent screen.
func (h *AuthHandlers) providerDenied(w http.ResponseWriter, r *http.Request) bool {
	providerErr := r.URL.Query().Get("error")
	if providerErr == "" {
		return false
	}
	h.logger.InfoContext(r.Context(), "OAuth consent declined",
		slog.String("path", r.URL.Path),
		slog.String("provider_error", providerErr),
	)
	http.Redirect(w, r, h.frontend("/login", url.Values{"error": {"access_denied"}}), http.StatusFound)
	return true
}

func (h *AuthHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleStatus")
	defer span.End()

	id := authdomain.IdentityFromContext(ctx)
	if id == nil {
		httpjson.Write(w, http.StatusOK, StatusResponse{Authenticated: false})
		return
	}
	httpjson.Write(w, http.StatusOK, StatusResponse{Authenticated: true, User: h.userView(r, id)})
}

// userView prefers the stored user; token identities whose user row cannot
// be read fall back to the claims.
func (h *AuthHandlers) userView(r *http.Request, id *authdomain.Identity) *userservice.UserView {
	user, err := h.users.GetUser(r.Context(), id.UserID)
	if err == nil {
		view := userservice.NewUserView(user)
		if id.Source != authdomain.SourceSession {
			view.IsAdmin = id.IsAdmin
		}
		return view
	}
	if !errors.Is(err, userservice.ErrUserNotFound) {
		h.logger.WarnContext(r.Context(), "Failed to load user for status",
			slog.String("user_id", id.UserID.String()),
			slog.String("error", err.Error()),
		)
	}
	return &userservice.UserView{
		ID:             id.UserID,
		DiscordID:      id.DiscordID,
		Username:       id.Username,
		IsAdmin:        id.IsAdmin,
		RobloxUsername: id.RobloxUsername,
		HasRoblox:      id.HasRoblox(),
	}
}

func (h *AuthHandlers) HandleDiscordLogin(w http.ResponseWriter, r *http.Request) {
	start, err := h.service.DiscordLoginURL(r.Context(), r.URL.Query().Get("redirect"))
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	h.setNonceCookie(w, start.Nonce)
	http.Redirect(w, r, start.URL, http.StatusFound)
}

func (h *AuthHandlers) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleDiscordCallback")
	defer span.End()
	r = r.WithContext(ctx)

	nonce := cookieValue(r, NonceCookie)
	h.clearCookie(w, NonceCookie, nonceCookiePath)
	if h.providerDenied(w, r) {
		return
	}

	q := r.URL.Query()
	res, err := h.service.CompleteDiscordLogin(ctx, authservice.CallbackRequest{
		Code:        q.Get("code"),
		State:       q.Get("state"),
		NonceCookie: nonce,
	}, sessionMeta(r))
	if err != nil {
		h.redirectError(w, r, err)
		return
	}

	h.setAuthCookie(w, res.Token)
	h.setSessionCookie(w, res.Session.Token, res.Session.ExpiresAt)

	http.Redirect(w, r, h.frontend("/auth/callback", url.Values{
		"token":    {res.Token},
		"id":       {res.User.ID.String()},
		"username": {res.User.DiscordUsername},
		"is_admin": {strconv.FormatBool(res.User.IsAdmin)},
		"redirect": {res.Redirect},
	}), http.StatusFound)
}

func (h *AuthHandlers) HandleRobloxLink(w http.ResponseWriter, r *http.Request) {
	start, err := h.service.RobloxLinkURL(r.Context(), authdomain.IdentityFromContext(r.Context()))
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	h.setNonceCookie(w, start.Nonce)
	http.Redirect(w, r, start.URL, http.StatusFound)
}

func (h *AuthHandlers) HandleRobloxCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleRobloxCallback")
	defer span.End()
	r = r.WithContext(ctx)

	nonce := cookieValue(r, NonceCookie)
	h.clearCookie(w, NonceCookie, nonceCookiePath)
	if h.providerDenied(w, r) {
		return
	}

	q := r.URL.Query()
	res, err := h.service.CompleteRobloxLink(ctx, authservice.CallbackRequest{
		Code:        q.Get("code"),
		State:       q.Get("state"),
		NonceCookie: nonce,
	})
	if err != nil {
		h.redirectError(w, r, err)
		return
	}

	h.setAuthCookie(w, res.Token)
	http.Redirect(w, r, h.frontend("/profile", url.Values{"linked": {"roblox"}}), http.StatusFound)
}

func (h *AuthHandlers) HandleGitHubLink(w http.ResponseWriter, r *http.Request) {
	target, err := h.service.GitHubLinkURL(r.Context(), authdomain.IdentityFromContext(r.Context()))
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *AuthHandlers) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	if h.providerDenied(w, r) {
		return
	}
	q := r.URL.Query()
	if _, err := h.service.CompleteGitHubLink(r.Context(), q.Get("code"), q.Get("state")); err != nil {
		h.redirectError(w, r, err)
		return
	}
	http.Redirect(w, r, h.frontend("/profile", url.Values{"linked": {"github"}}), http.StatusFound)
}

func (h *AuthHandlers) HandleTokenLogin(w http.ResponseWriter, r *http.Request) {
	var req tokenLoginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	res, err := h.service.TokenLogin(r.Context(), req.Token, sessionMeta(r))
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	h.setAuthCookie(w, res.Token)
	h.setSessionCookie(w, res.Session.Token, res.Session.ExpiresAt)
	httpjson.Write(w, http.StatusOK, StatusResponse{
		Authenticated: true,
		User:          userservice.NewUserView(res.User),
	})
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	for _, token := range []string{cookieValue(r, SessionCookie), issuedSession(ctx)} {
		if token == "" {
			continue
		}
		if err := h.service.Logout(ctx, token); err != nil {
			h.logger.WarnContext(ctx, "Failed to revoke session on logout", slog.String("error", err.Error()))
		}
	}
	h.clearCookie(w, AuthCookie, "/")
	h.clearCookie(w, SessionCookie, "/")
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}
