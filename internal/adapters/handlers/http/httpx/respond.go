package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"imgstudio/internal/core/domain"
)

// WriteJSON encodes v with the given status
func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}

// StatusFor maps domain errors to http status codes. Unknown errors are 503.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingIdentity), errors.Is(err, domain.ErrInvalidIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidForm),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrTooManyFilterValues),
		errors.Is(err, domain.ErrInvalidStorageURI):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMediaNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLegacyDataMigrationRequired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoValidResults):
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

// WriteError writes the status of err. Client errors carry their message, others a generic one.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := StatusFor(err)
	switch {
	case status < http.StatusInternalServerError:
		http.Error(w, err.Error(), status)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		http.Error(w, domain.UserMessage(err), status)
	case errors.Is(err, domain.ErrNoValidResults):
		http.Error(w, domain.CleanMessage(err.Error()), status)
	default:
		logger.Error("request failed", "error", err)
		http.Error(w, "service unavailable", status)
	}
}

// DecodeJSON decodes the request body into v
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
