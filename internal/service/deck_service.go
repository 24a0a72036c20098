package service

import (
	"context"
	"log/slog"
)

// CreateDeck registers a new empty deck and persists the registry.
func (s *Service) CreateDeck(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lib.AddDeck(name); err != nil {
		return err
	}
	s.persist(ctx)

	s.logger.Debug("deck created", slog.String("deck", name))
	return nil
}

// RenameDeck renames a deck, moving its cards along. The default deck is
// protected.
func (s *Service) RenameDeck(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lib.RenameDeck(from, to); err != nil {
		return err
	}
	s.invalidateReview()
	s.persist(ctx)

	s.logger.Debug("deck renamed", slog.String("from", from), slog.String("to", to))
	return nil
}

// DeleteDeck removes a deck and every card it owns. The default deck is
// protected.
func (s *Service) DeleteDeck(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lib.RemoveDeck(name); err != nil {
		return err
	}
	s.invalidateReview()
	s.persist(ctx)

	s.logger.Debug("deck deleted", slog.String("deck", name))
	return nil
}
