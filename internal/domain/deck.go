package domain

import "errors"

// DefaultDeck is the reserved deck every collection starts with. It can never
// be deleted or renamed.
const DefaultDeck = "Default"

// Deck-specific errors
var (
	// ErrDeckNameEmpty is returned when a deck name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckExists is returned when creating a deck whose name is already registered.
	ErrDeckExists = errors.New("deck already exists")

	// ErrDeckNotFound is returned when an operation references an unregistered deck.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDefaultDeckProtected is returned when deleting or renaming the default deck.
	ErrDefaultDeckProtected = errors.New("default deck cannot be deleted or renamed")
)
