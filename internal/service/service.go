// Package service orchestrates the application's use cases over the
// in-memory library, the scheduler, and the persistence backend.
//
// A single Service owns the library and the current study sessions. All
// operations take the big lock: the product is a single-actor tool and every
// operation is a finite, synchronous computation, so one writer at a time is
// the whole concurrency model. Mutations save the full snapshot through the
// store afterwards; save failures are logged and swallowed; persistence is
// best-effort and never surfaces to the user.
package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain/srs"
	"github.com/youbo0129ueno-star/memory-anki/internal/library"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
	"github.com/youbo0129ueno-star/memory-anki/internal/store"
)

// Service wires the library, scheduler, sessions and persistence together.
type Service struct {
	mu        sync.Mutex
	lib       *library.Library
	store     store.Store
	scheduler srs.Service
	rng       *rand.Rand
	logger    *slog.Logger

	review *session.Review
	test   *session.Test
}

// New loads the persisted collection and builds the service. Loading happens
// once at startup; absence of stored data means an empty collection, never
// an error.
func New(
	ctx context.Context,
	st store.Store,
	scheduler srs.Service,
	rng *rand.Rand,
	logger *slog.Logger,
) (*Service, error) {
	if st == nil {
		panic("store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "service"))

	cards, err := st.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	decks, err := st.LoadDecks(ctx)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		lib:       library.NewFromSnapshot(cards, decks),
		store:     st,
		scheduler: scheduler,
		rng:       rng,
		logger:    logger,
	}
	svc.test = session.NewTest(rng)

	logger.Info("collection loaded",
		slog.Int("cards", len(cards)),
		slog.Int("decks", len(svc.lib.Decks())))
	return svc, nil
}

// Cards returns the full card set in insertion order.
func (s *Service) Cards() []*domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Cards()
}

// Decks returns the registered deck names.
func (s *Service) Decks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Decks()
}

// DueCards returns the deck's cards due on the given day.
func (s *Service) DueCards(deck string, today time.Time) []*domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.DueCards(deck, today)
}

// PendingCards returns the deck's cards scheduled beyond the given day.
func (s *Service) PendingCards(deck string, today time.Time) []*domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.PendingCards(deck, today)
}

// persist saves the whole collection. Failures are logged and swallowed: the
// in-memory state is authoritative and the user is never interrupted by a
// storage problem.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.SaveCards(ctx, s.lib.Cards()); err != nil {
		s.logger.Error("failed to save cards", slog.String("error", err.Error()))
	}
	if err := s.store.SaveDecks(ctx, s.lib.Decks()); err != nil {
		s.logger.Error("failed to save decks", slog.String("error", err.Error()))
	}
}

// invalidateReview drops the current review session. Called whenever the
// card set changes underneath it, so the next review starts from a fresh
// due-list snapshot.
func (s *Service) invalidateReview() {
	s.review = nil
}
