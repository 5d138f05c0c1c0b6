package formhandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authdomain "github.com/skyrden-airlines/portal/app/modules/auth/domain"
	formservice "github.com/skyrden-airlines/portal/app/modules/form/application"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

// FormHandlers implements Handlers.
type FormHandlers struct {
	service formservice.Service
	logger  *slog.Logger
}

// NewFormHandlers creates a new FormHandlers instance.
func NewFormHandlers(service formservice.Service, logger *slog.Logger) Handlers {
	return &FormHandlers{service: service, logger: logger}
}

// formID reads the {id} route parameter. Malformed ids cannot match a form.
func formID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, formservice.ErrFormNotFound
	}
	return id, nil
}

func (h *FormHandlers) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	forms, err := h.service.ListOpenForms(r.Context())
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, forms)
}

func (h *FormHandlers) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	form, err := h.service.GetOpenForm(r.Context(), id)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, form)
}

func (h *FormHandlers) HandleListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.service.ListForms(r.Context())
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, forms)
}

func (h *FormHandlers) HandleGetForm(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	form, err := h.service.GetForm(r.Context(), id)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, form)
}

func (h *FormHandlers) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	var input formservice.FormInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	var createdBy uuid.UUID
	if id := authdomain.IdentityFromContext(r.Context()); id != nil {
		createdBy = id.UserID
	}

	form, err := h.service.CreateForm(r.Context(), input, createdBy)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, form)
}

func (h *FormHandlers) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	var input formservice.FormInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	form, err := h.service.UpdateForm(r.Context(), id, input)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, form)
}

func (h *FormHandlers) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}
	result, err := h.service.DeleteForm(r.Context(), id)
	if err != nil {
		httpjson.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Form delete handled",
		slog.String("form_id", id.String()),
		slog.Bool("deleted", result.Deleted),
	)
	httpjson.Write(w, http.StatusOK, result)
}
