package submissionhandlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	submissionservice "github.com/skyrden-airlines/portal/app/modules/submission/application"
	"github.com/skyrden-airlines/portal/app/shared/apperr"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers defines the submission endpoints.
type Handlers interface {
	HandleSubmit(w http.ResponseWriter, r *http.Request)
	HandleMyApplications(w http.ResponseWriter, r *http.Request)
	HandleAdminList(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)
	HandleReview(w http.ResponseWriter, r *http.Request)
}

// SubmissionHandlers implements Handlers.
type SubmissionHandlers struct {
	service submissionservice.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewSubmissionHandlers creates a new SubmissionHandlers instance.
func NewSubmissionHandlers(service submissionservice.Service, logger *slog.Logger) Handlers {
	return &SubmissionHandlers{service: service, logger: logger, now: time.Now}
}

// caller returns the authenticated identity. Routes are mounted behind
// RequireAuth, so a missing identity is a wiring error surfaced as 401.
func caller(r *http.Request) (*authdomain.Identity, error) {
	id := authdomain.IdentityFromContext(r.Context())
	if id == nil {
		return nil, apperr.ErrAuthenticationRequired
	}
	return id, nil
}

func adminQuery(r *http.Request) submissionservice.AdminQuery {
	q := r.URL.Query()
	return submissionservice.AdminQuery{
		FormID: q.Get("form_id"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}
}

func (h *SubmissionHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	var input submissionservice.SubmitInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	submission, err := h.service.Submit(r.Context(), id.UserID, input)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, submission)
}

func (h *SubmissionHandlers) HandleMyApplications(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	submissions, err := h.service.ListMine(r.Context(), id.UserID)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, submissions)
}

func (h *SubmissionHandlers) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.AdminList(r.Context(), adminQuery(r))
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, submissions)
}

func (h *SubmissionHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export(r.Context(), adminQuery(r))
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.xlsx", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write export", slog.String("error", err.Error()))
	}
}

func (h *SubmissionHandlers) HandleReview(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	var input submissionservice.ReviewInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	result, err := h.service.Review(r.Context(), id.UserID, input)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, result)
}
