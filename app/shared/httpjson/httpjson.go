// Package httpjson writes JSON responses and maps classified errors to HTTP.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/skyrden-airlines/portal/app/shared/apperr"
)

// maxBodyBytes bounds request bodies decoded by Decode.
const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorBody. Unclassified errors are logged and
// reported as a generic 500 so internal details never reach the client.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ae, ok := apperr.As(err)
	if !ok || ae.Kind == apperr.KindInternal {
		if logger != nil {
			logger.ErrorContext(r.Context(), "Request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
		Write(w, http.StatusInternalServerError, ErrorBody{Error: "internal server error", Code: "internal_error"})
		return
	}
	if ae.Kind == apperr.KindUpstream && logger != nil {
		logger.WarnContext(r.Context(), "Upstream provider failure",
			slog.String("path", r.URL.Path),
			slog.String("code", ae.Code),
			slog.String("error", err.Error()),
		)
	}
	Write(w, ae.Kind.HTTPStatus(), ErrorBody{Error: ae.Message, Code: ae.Code})
}

// Decode reads a JSON body into dst. Unknown fields are tolerated because the
// front end sends display-only keys alongside the payload.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ErrMalformedRequest.WithMessage("request body is empty")
		}
		// Typed fields report their own validation errors.
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.ErrMalformedRequest
	}
	return nil
}
