package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzaytsev/vocab-api/internal/api/shared"
	"github.com/rzaytsev/vocab-api/internal/domain"
)

// decodeAndValidate decodes the JSON body into v and validates it, writing
// the error response itself. Returns false when the caller should stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		log.Debug("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		log.Debug("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// pathLevel parses the {level} URL parameter, writing the error response on
// failure.
func pathLevel(w http.ResponseWriter, r *http.Request, log *slog.Logger) (domain.Level, bool) {
	raw := chi.URLParam(r, "level")
	level, err := domain.ParseLevel(raw)
	if err != nil {
		log.Debug("invalid level in path", slog.String("level", raw))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return "", false
	}
	return level, true
}

// handleServiceError writes the mapped response for a service error.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
