// Package store defines the persistence interfaces the application depends
// on. Implementations live under internal/platform.
//
// The contract is deliberately snapshot-shaped: the application loads the
// whole card set and deck registry once at startup and saves them whole
// after every mutation. Absence of data is empty state, never an error.
// Persistence is best-effort from the caller's perspective: save failures
// are logged and swallowed upstream, not surfaced to the user.
package store

import (
	"context"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// CardStore persists the card set.
type CardStore interface {
	// LoadCards returns every stored card in insertion order. A store with
	// no data returns an empty slice and no error.
	LoadCards(ctx context.Context) ([]*domain.Card, error)

	// SaveCards replaces the stored card set with the given one. The
	// operation is atomic: either the full snapshot is stored or the
	// previous state survives. Saving the same snapshot twice is idempotent.
	SaveCards(ctx context.Context, cards []*domain.Card) error
}

// DeckStore persists the deck registry.
type DeckStore interface {
	// LoadDecks returns the registered deck names in registration order.
	LoadDecks(ctx context.Context) ([]string, error)

	// SaveDecks replaces the stored deck registry with the given one.
	SaveDecks(ctx context.Context, decks []string) error
}

// Store is the full persistence surface consumed by the application.
type Store interface {
	CardStore
	DeckStore
}
