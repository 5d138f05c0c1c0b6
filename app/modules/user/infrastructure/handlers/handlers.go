package userhandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	userservice "github.com/skyrden-airlines/portal/app/modules/user/application"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

// Handlers defines the admin whitelist endpoints.
type Handlers interface {
	HandleListWhitelist(w http.ResponseWriter, r *http.Request)
	HandleAddWhitelist(w http.ResponseWriter, r *http.Request)
	HandleRemoveWhitelist(w http.ResponseWriter, r *http.Request)
}

// UserHandlers implements Handlers.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(service userservice.Service, logger *slog.Logger) Handlers {
	return &UserHandlers{service: service, logger: logger}
}

type addWhitelistRequest struct {
	DiscordID string `json:"discord_id"`
	Note      string `json:"note"`
}

func (h *UserHandlers) HandleListWhitelist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListWhitelist(r.Context())
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, entries)
}

func (h *UserHandlers) HandleAddWhitelist(w http.ResponseWriter, r *http.Request) {
	var req addWhitelistRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	var addedBy *uuid.UUID
	if id := authdomain.IdentityFromContext(r.Context()); id != nil {
		addedBy = &id.UserID
	}

	entry, err := h.service.AddToWhitelist(r.Context(), req.DiscordID, req.Note, addedBy)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Whitelist entry added", slog.String("discord_id", entry.DiscordID))
	httpjson.Write(w, http.StatusCreated, entry)
}

func (h *UserHandlers) HandleRemoveWhitelist(w http.ResponseWriter, r *http.Request) {
	discordID := chi.URLParam(r, "discord_id")
	if err := h.service.RemoveFromWhitelist(r.Context(), discordID); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Whitelist entry removed", slog.String("discord_id", discordID))
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}
