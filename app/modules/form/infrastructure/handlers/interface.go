package formhandlers

import "net/http"

// Handlers defines the form catalog endpoints.
type Handlers interface {
	HandleListTemplates(w http.ResponseWriter, r *http.Request)
	HandleGetTemplate(w http.ResponseWriter, r *http.Request)

	HandleListForms(w http.ResponseWriter, r *http.Request)
	HandleGetForm(w http.ResponseWriter, r *http.Request)
	HandleCreateForm(w http.ResponseWriter, r *http.Request)
	HandleUpdateForm(w http.ResponseWriter, r *http.Request)
	HandleDeleteForm(w http.ResponseWriter, r *http.Request)
}
