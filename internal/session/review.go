// Package session implements the ephemeral study sessions: the ordered
// review of due cards and the shuffled multiple-choice test. Sessions are
// never persisted; they snapshot a card subset at creation and are discarded
// when the underlying set changes or the user resets.
package session

import (
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain/srs"
	"github.com/youbo0129ueno-star/memory-anki/internal/library"
)

// Review walks a snapshotted list of due cards. Per-card interaction state
// (revealed answer, selected choice) is transient and cleared on every
// advance. Grading mutates the underlying card through the library and the
// scheduler; everything else is local bookkeeping.
//
// The due list is captured once at construction. It is intentionally not
// re-queried as the user progresses: cards graded mid-session stay in the
// snapshot even though they are no longer due.
type Review struct {
	lib       *library.Library
	scheduler srs.Service

	cards    []*domain.Card
	pos      int
	revealed bool
	selected string
	answered bool
	finished bool
}

// NewReview snapshots the deck's current due list and starts at position 0
// with the answer hidden and no choice selected.
func NewReview(
	lib *library.Library,
	scheduler srs.Service,
	deck string,
	today time.Time,
) *Review {
	return &Review{
		lib:       lib,
		scheduler: scheduler,
		cards:     lib.DueCards(deck, today),
	}
}

// Current returns the card at the session position, or false when the
// session is empty or every card has been graded.
func (r *Review) Current() (*domain.Card, bool) {
	if r.finished || r.pos >= len(r.cards) {
		return nil, false
	}
	return r.cards[r.pos], true
}

// Reveal shows the answer for the current card. For basic cards this is the
// explicit flip action; choice cards reveal implicitly through Select.
func (r *Review) Reveal() {
	if _, ok := r.Current(); !ok {
		return
	}
	r.revealed = true
}

// Select records the user's choice for the current choice card and reveals
// the answer. The recorded choice is display-only feedback: whether it was
// correct does not constrain the grade chosen afterwards. Selecting on a
// basic card or with no current card does nothing.
func (r *Review) Select(choice string) {
	card, ok := r.Current()
	if !ok {
		return
	}

	switch card.Kind {
	case domain.KindChoice:
		r.selected = choice
		r.answered = true
		r.revealed = true
	case domain.KindBasic:
		// basic cards have nothing to select
	}
}

// Revealed reports whether the current card's answer is visible.
func (r *Review) Revealed() bool {
	return r.revealed
}

// Selected returns the recorded choice for the current card, if any.
func (r *Review) Selected() (string, bool) {
	return r.selected, r.answered
}

// Grade applies the scheduler to the current card, writes the updated card
// back into the library, clears the per-card state, and advances. The
// position is clamped so it never exceeds the last index: grading the final
// card pins the position there and marks the session finished instead of
// running out of bounds.
//
// Grading with no current card is a guarded no-op, not an error.
func (r *Review) Grade(grade domain.Grade, now time.Time) error {
	card, ok := r.Current()
	if !ok {
		return nil
	}

	updated, err := r.scheduler.Grade(card, grade, now)
	if err != nil {
		return err
	}
	r.lib.ReplaceCard(updated)

	r.revealed = false
	r.selected = ""
	r.answered = false

	if r.pos >= len(r.cards)-1 {
		r.finished = true
	} else {
		r.pos++
	}
	return nil
}

// Reset rewinds to position 0 and clears the per-card state. The snapshot is
// deliberately reused: the stale due list stays until the caller replaces
// the session by re-entering the review.
func (r *Review) Reset() {
	r.pos = 0
	r.revealed = false
	r.selected = ""
	r.answered = false
	r.finished = false
}

// Position returns the current index into the snapshot. After the last card
// has been graded it stays pinned at the final index.
func (r *Review) Position() int {
	return r.pos
}

// Size returns the length of the snapshotted due list.
func (r *Review) Size() int {
	return len(r.cards)
}

// Finished reports whether every card in the snapshot has been graded.
func (r *Review) Finished() bool {
	return r.finished || len(r.cards) == 0
}
