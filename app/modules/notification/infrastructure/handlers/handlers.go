package notificationhandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	notificationservice "github.com/skyrden-airlines/portal/app/modules/notification/application"
	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

// Handlers defines the admin notification endpoints.
type Handlers interface {
	HandleGetConfig(w http.ResponseWriter, r *http.Request)
	HandleUpdateConfig(w http.ResponseWriter, r *http.Request)
	HandleListPending(w http.ResponseWriter, r *http.Request)
	HandleSendAll(w http.ResponseWriter, r *http.Request)
	HandleSend(w http.ResponseWriter, r *http.Request)
}

// NotificationHandlers implements Handlers.
type NotificationHandlers struct {
	service notificationservice.Service
	logger  *slog.Logger
}

// NewNotificationHandlers creates a new NotificationHandlers instance.
func NewNotificationHandlers(service notificationservice.Service, logger *slog.Logger) Handlers {
	return &NotificationHandlers{service: service, logger: logger}
}

type sendRequest struct {
	Message string `json:"message"`
}

type sendResponse struct {
	Success bool `json:"success"`
}

func (h *NotificationHandlers) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.service.GetConfig(r.Context()))
}

func (h *NotificationHandlers) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var update notificationdomain.ConfigUpdate
	if err := httpjson.Decode(r, &update); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	view, err := h.service.UpdateConfig(r.Context(), update)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

func (h *NotificationHandlers) HandleListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.ListPending(r.Context())
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, pending)
}

func (h *NotificationHandlers) HandleSendAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SendAllPending(r.Context())
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, result)
}

// HandleSend resends one submission's DM. The body is optional.
func (h *NotificationHandlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, r, h.logger, notificationservice.ErrSubmissionNotFound)
		return
	}
	var req sendRequest
	if r.ContentLength != 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, h.logger, err)
			return
		}
	}
	if err := h.service.Notify(r.Context(), id, req.Message); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sendResponse{Success: true})
}
