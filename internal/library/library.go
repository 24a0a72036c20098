// Package library holds the application's card set and deck registry in
// memory. It is the single owner of long-lived card state: the scheduler and
// the session state machines borrow references from it, compute derived
// views, and write patches back through it.
//
// A Library is not safe for concurrent use; callers that share one across
// goroutines must serialize access (the service layer does). Tests can
// instantiate as many independent libraries as they like.
package library

import (
	"time"

	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// Library is the caller-owned card set plus the explicit deck registry.
// Decks may exist with zero cards; the default deck is always registered.
type Library struct {
	cards []*domain.Card
	decks []string
}

// New creates an empty library containing only the default deck.
func New() *Library {
	return &Library{
		decks: []string{domain.DefaultDeck},
	}
}

// NewFromSnapshot builds a library from persisted state. Deck names
// referenced by cards but missing from the registry are registered, and the
// default deck is always present. Insertion order of both cards and decks is
// preserved.
func NewFromSnapshot(cards []*domain.Card, decks []string) *Library {
	l := New()
	for _, deck := range decks {
		if deck != "" && !l.HasDeck(deck) {
			l.decks = append(l.decks, deck)
		}
	}
	for _, card := range cards {
		l.AddCard(card)
	}
	return l
}

// Cards returns the card set in insertion order. The slice is a copy but the
// cards are shared references.
func (l *Library) Cards() []*domain.Card {
	return append([]*domain.Card(nil), l.cards...)
}

// Decks returns the registered deck names in registration order.
func (l *Library) Decks() []string {
	return append([]string(nil), l.decks...)
}

// HasDeck reports whether the deck name is registered.
func (l *Library) HasDeck(name string) bool {
	for _, deck := range l.decks {
		if deck == name {
			return true
		}
	}
	return false
}

// AddDeck registers a new empty deck.
func (l *Library) AddDeck(name string) error {
	if name == "" {
		return domain.ErrDeckNameEmpty
	}
	if l.HasDeck(name) {
		return domain.ErrDeckExists
	}
	l.decks = append(l.decks, name)
	return nil
}

// RenameDeck renames a deck and moves its cards along. The default deck is
// protected, the source must exist, and the target name must be free.
func (l *Library) RenameDeck(from, to string) error {
	if from == domain.DefaultDeck {
		return domain.ErrDefaultDeckProtected
	}
	if to == "" {
		return domain.ErrDeckNameEmpty
	}
	if !l.HasDeck(from) {
		return domain.ErrDeckNotFound
	}
	if l.HasDeck(to) {
		return domain.ErrDeckExists
	}

	for i, deck := range l.decks {
		if deck == from {
			l.decks[i] = to
		}
	}
	for _, card := range l.cards {
		if card.Deck == from {
			card.Deck = to
		}
	}
	return nil
}

// RemoveDeck unregisters a deck and deletes every card it owns. The default
// deck is protected.
func (l *Library) RemoveDeck(name string) error {
	if name == domain.DefaultDeck {
		return domain.ErrDefaultDeckProtected
	}
	if !l.HasDeck(name) {
		return domain.ErrDeckNotFound
	}

	decks := l.decks[:0]
	for _, deck := range l.decks {
		if deck != name {
			decks = append(decks, deck)
		}
	}
	l.decks = decks

	cards := l.cards[:0]
	for _, card := range l.cards {
		if card.Deck != name {
			cards = append(cards, card)
		}
	}
	l.cards = cards
	return nil
}

// AddCard appends a card to the set, registering its deck if needed.
func (l *Library) AddCard(card *domain.Card) {
	if card.Deck != "" && !l.HasDeck(card.Deck) {
		l.decks = append(l.decks, card.Deck)
	}
	l.cards = append(l.cards, card)
}

// CardByID returns the card with the given ID, or false if absent.
func (l *Library) CardByID(id uuid.UUID) (*domain.Card, bool) {
	for _, card := range l.cards {
		if card.ID == id {
			return card, true
		}
	}
	return nil, false
}

// ReplaceCard swaps in an updated card by ID, keeping its position in the
// set. The patch is keyed by identifier so it stays idempotent if re-applied
// (last write wins). Returns false if the card is no longer in the set.
func (l *Library) ReplaceCard(updated *domain.Card) bool {
	for i, card := range l.cards {
		if card.ID == updated.ID {
			l.cards[i] = updated
			return true
		}
	}
	return false
}

// RemoveCard deletes a card by ID. Returns false if it was not present.
func (l *Library) RemoveCard(id uuid.UUID) bool {
	for i, card := range l.cards {
		if card.ID == id {
			l.cards = append(l.cards[:i], l.cards[i+1:]...)
			return true
		}
	}
	return false
}

// DueCards returns the cards of the given deck that are due on the given
// day, in the card set's insertion order. No due-date sorting is performed:
// cards overdue by weeks are not prioritized over cards that became due
// today. The result is a freshly computed view, never stored state.
func (l *Library) DueCards(deck string, today time.Time) []*domain.Card {
	var due []*domain.Card
	for _, card := range l.cards {
		if card.Deck == deck && card.IsDue(today) {
			due = append(due, card)
		}
	}
	return due
}

// PendingCards returns the cards of the given deck whose next review lies
// beyond today, in insertion order.
func (l *Library) PendingCards(deck string, today time.Time) []*domain.Card {
	var pending []*domain.Card
	for _, card := range l.cards {
		if card.Deck == deck && !card.IsDue(today) {
			pending = append(pending, card)
		}
	}
	return pending
}

// ChoiceCards returns the choice cards of the given deck, in insertion
// order. These form the eligible pool for a test session.
func (l *Library) ChoiceCards(deck string) []*domain.Card {
	var pool []*domain.Card
	for _, card := range l.cards {
		if card.Deck != deck {
			continue
		}
		switch card.Kind {
		case domain.KindChoice:
			pool = append(pool, card)
		case domain.KindBasic:
			// free-recall cards cannot be tested
		}
	}
	return pool
}
