package api

import (
	"errors"
	"net/http"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain/srs"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, domain.ErrDeckNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrDeckExists):
		return http.StatusConflict

	// Protected resources
	case errors.Is(err, domain.ErrDefaultDeckProtected):
		return http.StatusForbidden

	// Recoverable user-facing conditions: re-prompt, nothing corrupted
	case errors.Is(err, domain.ErrInvalidEdit),
		errors.Is(err, domain.ErrDeckNameEmpty),
		errors.Is(err, session.ErrEmptyPool),
		errors.Is(err, session.ErrNoSelection),
		errors.Is(err, srs.ErrInvalidGrade):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, domain.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, domain.ErrDeckExists):
		return "A deck with that name already exists"

	case errors.Is(err, domain.ErrDefaultDeckProtected):
		return "The default deck cannot be deleted or renamed"

	case errors.Is(err, domain.ErrInvalidEdit):
		return "Invalid card: the question and answer are required, and choice cards need at least 2 options"

	case errors.Is(err, domain.ErrDeckNameEmpty):
		return "Deck name is required"

	case errors.Is(err, session.ErrEmptyPool):
		return "No eligible cards"

	case errors.Is(err, session.ErrNoSelection):
		return "Select an answer before advancing"

	case errors.Is(err, srs.ErrInvalidGrade):
		return "Grade must be one of: again, hard, good, easy"

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError maps the error and writes the sanitized response.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}
