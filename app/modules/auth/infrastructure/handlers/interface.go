package authhandlers

import "net/http"

// Handlers defines the HTTP surface of the auth module.
type Handlers interface {
	HandleStatus(w http.ResponseWriter, r *http.Request)
	HandleDiscordLogin(w http.ResponseWriter, r *http.Request)
	HandleDiscordCallback(w http.ResponseWriter, r *http.Request)
	HandleRobloxLink(w http.ResponseWriter, r *http.Request)
	HandleRobloxCallback(w http.ResponseWriter, r *http.Request)
	HandleGitHubLink(w http.ResponseWriter, r *http.Request)
	HandleGitHubCallback(w http.ResponseWriter, r *http.Request)
	HandleTokenLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)

	// Authenticate resolves the caller into the request context. It never
	// rejects a request.
	Authenticate(next http.Handler) http.Handler
}
