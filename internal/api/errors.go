package api

import (
	"errors"
	"net/http"

	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
	"github.com/rzaytsev/vocab-api/internal/service"
	"github.com/rzaytsev/vocab-api/internal/service/review"
)

// MapErrorToStatusCode maps service and domain errors onto HTTP status
// codes. Unknown errors become 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, review.ErrNoSession):
		return http.StatusNotFound

	case errors.Is(err, service.ErrWordAlreadyTracked),
		errors.Is(err, service.ErrWordExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrEmptyWord),
		errors.Is(err, domain.ErrEmptyTranslation),
		errors.Is(err, srs.ErrInvalidGrade),
		errors.Is(err, service.ErrMalformedImport),
		errors.Is(err, service.ErrInvalidTheme),
		errors.Is(err, review.ErrInvalidMode),
		errors.Is(err, review.ErrGradeNotAccepted),
		errors.Is(err, review.ErrOptionNotAccepted):
		return http.StatusBadRequest

	case errors.Is(err, review.ErrEmptyQueue):
		return http.StatusNoContent

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error. Sentinel
// errors have stable wording; anything unknown gets a generic message so
// internal details stay out of responses.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, review.ErrNoSession):
		return "No active review session"
	case errors.Is(err, service.ErrWordAlreadyTracked):
		return "Word is already being learned"
	case errors.Is(err, service.ErrWordExists):
		return "Word already exists"
	case errors.Is(err, domain.ErrInvalidLevel):
		return "Invalid level"
	case errors.Is(err, domain.ErrEmptyWord):
		return "Word cannot be empty"
	case errors.Is(err, domain.ErrEmptyTranslation):
		return "Translation cannot be empty"
	case errors.Is(err, srs.ErrInvalidGrade):
		return "Invalid answer grade"
	case errors.Is(err, service.ErrMalformedImport):
		return "Import payload is malformed"
	case errors.Is(err, service.ErrInvalidTheme):
		return "Invalid theme"
	case errors.Is(err, review.ErrInvalidMode):
		return "Invalid session mode"
	case errors.Is(err, review.ErrGradeNotAccepted):
		return "Quiz sessions answer by option"
	case errors.Is(err, review.ErrOptionNotAccepted):
		return "Flashcard sessions answer by grade"
	default:
		return "An unexpected error occurred"
	}
}
