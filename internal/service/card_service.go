package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// ErrCardNotFound is returned when an operation references a card that is
// not in the collection.
var ErrCardNotFound = errors.New("card not found")

// CardEdit carries the editable fields of a card. Scheduling state is not
// editable; it belongs to the scheduler alone.
type CardEdit struct {
	Question    string
	Answer      string
	Choices     []string
	Explanation string
}

// CreateCard adds a new card to the given deck, registering the deck if
// needed, and persists the collection. The card starts immediately due.
func (s *Service) CreateCard(
	ctx context.Context,
	deck string,
	kind domain.CardKind,
	question, answer string,
	choices []string,
	explanation string,
	now time.Time,
) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := domain.NewCard(deck, kind, question, answer, choices, explanation, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEdit, err)
	}

	s.lib.AddCard(card)
	s.invalidateReview()
	s.persist(ctx)

	s.logger.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck", deck),
		slog.String("kind", string(kind)))
	return card, nil
}

// EditCard updates a card's text fields. An edit that would leave the card
// invalid (empty question or answer, or a choice card with fewer than two
// options) is rejected with ErrInvalidEdit and the card stays untouched.
func (s *Service) EditCard(ctx context.Context, id uuid.UUID, edit CardEdit) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.lib.CardByID(id)
	if !ok {
		return nil, ErrCardNotFound
	}

	updated := card.Clone()
	updated.Question = edit.Question
	updated.Answer = edit.Answer
	updated.Explanation = edit.Explanation
	switch card.Kind {
	case domain.KindChoice:
		updated.Choices = edit.Choices
	case domain.KindBasic:
		// basic cards carry no options
	}

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEdit, err)
	}

	s.lib.ReplaceCard(updated)
	s.invalidateReview()
	s.persist(ctx)

	s.logger.Debug("card edited", slog.String("card_id", id.String()))
	return updated, nil
}

// DeleteCard removes a card from the collection.
func (s *Service) DeleteCard(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.RemoveCard(id) {
		return ErrCardNotFound
	}

	s.invalidateReview()
	s.persist(ctx)

	s.logger.Debug("card deleted", slog.String("card_id", id.String()))
	return nil
}
