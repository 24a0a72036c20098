package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/logger"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(svc *service.Service, log *slog.Logger) *CardHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for CardHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards requests, optionally filtered by deck.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deck := r.URL.Query().Get("deck")

	cards := h.svc.Cards()
	if deck != "" {
		filtered := cards[:0]
		for _, card := range cards {
			if card.Deck == deck {
				filtered = append(filtered, card)
			}
		}
		cards = filtered
	}

	RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// CreateCard handles POST /cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCardRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.svc.CreateCard(
		r.Context(),
		req.Deck,
		domain.CardKind(req.Kind),
		req.Question,
		req.Answer,
		req.Choices,
		req.Explanation,
		time.Now(),
	)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// EditCard handles PUT /cards/{id} requests.
func (h *CardHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req EditCardRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.svc.EditCard(r.Context(), id, service.CardEdit{
		Question:    req.Question,
		Answer:      req.Answer,
		Choices:     req.Choices,
		Explanation: req.Explanation,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("card edited", slog.String("card_id", id.String()))
	RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	if err := h.svc.DeleteCard(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ImportCards handles POST /cards/import requests with a CSV body.
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.svc.ImportCSV(r.Context(), r.Body, time.Now())
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Failed to parse import data")
		return
	}

	log.Info("cards imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	RespondWithJSON(w, r, http.StatusOK, result)
}
