package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
)

// errorDetail is the body of every non-2xx response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// statusFor maps an error chain to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, admin.ErrAccessDenied):
		return http.StatusUnauthorized, "access_denied"
	case errors.Is(err, admin.ErrLoggedOut):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, admin.ErrNoDraft):
		return http.StatusConflict, "no_draft"
	case errors.Is(err, admin.ErrLoggedIn):
		return http.StatusConflict, "already_logged_in"
	case errors.Is(err, admin.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDeleteBlocked):
		return http.StatusConflict, "delete_blocked"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "store_timeout"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError renders err as an errorResponse. Unexpected errors are logged
// with the request context; expected ones are left to the access log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := admin.Message(err)
	switch status {
	case http.StatusRequestEntityTooLarge:
		msg = "The request body is too large."
	case http.StatusInternalServerError:
		s.logger.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
// An empty body is allowed when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case allowEmpty && errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrValidation, err)
		}
	}
	return nil
}
