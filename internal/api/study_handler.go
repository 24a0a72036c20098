package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/logger"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
)

// StudyHandler drives the review and test sessions over HTTP. It is a thin
// translation layer: the state machines live in the session package and the
// handler only feeds them user actions and renders snapshots.
type StudyHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(svc *service.Service, log *slog.Logger) *StudyHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for StudyHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &StudyHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "study_handler")),
	}
}

// StartReview handles POST /review/start requests. Entering the review
// snapshots the deck's current due list.
func (h *StudyHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.StartReview(req.Deck, time.Now()); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("review session started", slog.String("deck", req.Deck))
	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// GetReview handles GET /review requests.
func (h *StudyHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// RevealAnswer handles POST /review/reveal requests.
func (h *StudyHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	h.svc.ReviewReveal()
	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// SelectReviewChoice handles POST /review/select requests for choice cards.
// The selection reveals the answer for feedback; it does not grade the card.
func (h *StudyHandler) SelectReviewChoice(w http.ResponseWriter, r *http.Request) {
	var req SelectChoiceRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	h.svc.ReviewSelect(req.Choice)
	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// GradeCard handles POST /review/grade requests.
func (h *StudyHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.ReviewGrade(r.Context(), domain.Grade(req.Grade), time.Now()); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// ResetReview handles POST /review/reset requests. The position rewinds but
// the due-list snapshot is reused until the review is started again.
func (h *StudyHandler) ResetReview(w http.ResponseWriter, r *http.Request) {
	h.svc.ResetReview()
	RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(h.svc.ReviewSnapshot()))
}

// StartTest handles POST /test/start requests.
func (h *StudyHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.StartTest(req.Deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("test session started", slog.String("deck", req.Deck))
	RespondWithJSON(w, r, http.StatusOK, testStateToResponse(h.svc.TestSnapshot()))
}

// GetTest handles GET /test requests.
func (h *StudyHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, testStateToResponse(h.svc.TestSnapshot()))
}

// SelectTestChoice handles POST /test/select requests. The first answer for
// a card is final.
func (h *StudyHandler) SelectTestChoice(w http.ResponseWriter, r *http.Request) {
	var req SelectChoiceRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	h.svc.TestSelect(req.Choice)
	RespondWithJSON(w, r, http.StatusOK, testStateToResponse(h.svc.TestSnapshot()))
}

// AdvanceTest handles POST /test/advance requests.
func (h *StudyHandler) AdvanceTest(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.TestAdvance(); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, testStateToResponse(h.svc.TestSnapshot()))
}

// RetryWrongOnly handles POST /test/retry-wrong requests. When every answer
// was correct the derived pool is empty; the 422 carries a distinct message
// so clients can present "all correct" rather than a failure.
func (h *StudyHandler) RetryWrongOnly(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.TestRetryWrongOnly(); err != nil {
		if errors.Is(err, session.ErrEmptyPool) {
			RespondWithError(w, r, http.StatusUnprocessableEntity, "All answers were correct")
			return
		}
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, testStateToResponse(h.svc.TestSnapshot()))
}
