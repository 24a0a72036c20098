// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/logger"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(svc *service.Service, log *slog.Logger) *DeckHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for DeckHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &DeckHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, h.svc.Decks())
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDeckRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.CreateDeck(r.Context(), req.Name); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("deck created", slog.String("deck", req.Name))
	RespondWithJSON(w, r, http.StatusCreated, h.svc.Decks())
}

// RenameDeck handles PUT /decks/{name} requests.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	name := chi.URLParam(r, "name")

	var req RenameDeckRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.RenameDeck(r.Context(), name, req.Name); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("deck renamed", slog.String("from", name), slog.String("to", req.Name))
	RespondWithJSON(w, r, http.StatusOK, h.svc.Decks())
}

// DeleteDeck handles DELETE /decks/{name} requests. Deleting a deck deletes
// the cards it owns.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	name := chi.URLParam(r, "name")

	if err := h.svc.DeleteDeck(r.Context(), name); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("deck deleted", slog.String("deck", name))
	w.WriteHeader(http.StatusNoContent)
}

// DueCards handles GET /decks/{name}/due requests.
func (h *DeckHandler) DueCards(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	RespondWithJSON(w, r, http.StatusOK, cardsToResponse(h.svc.DueCards(name, time.Now())))
}

// PendingCards handles GET /decks/{name}/pending requests.
func (h *DeckHandler) PendingCards(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	RespondWithJSON(w, r, http.StatusOK, cardsToResponse(h.svc.PendingCards(name, time.Now())))
}
