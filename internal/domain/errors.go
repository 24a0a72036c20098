// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrInvalidEdit is returned when a card edit would leave the card in an
// invalid state: an empty question or answer, or a choice card with fewer
// than two options. The edit is rejected and the card is left untouched.
var ErrInvalidEdit = errors.New("invalid card edit")
