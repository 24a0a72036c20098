package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

func newCard(t *testing.T, deck, question string, now time.Time) *domain.Card {
	t.Helper()

	card, err := domain.NewCard(deck, domain.KindBasic, question, "answer", nil, "", now)
	require.NoError(t, err)
	return card
}

func TestNewLibraryHasDefaultDeck(t *testing.T) {
	t.Parallel()

	l := New()
	require.Equal(t, []string{domain.DefaultDeck}, l.Decks())
	require.Empty(t, l.Cards())
}

func TestDeckRegistry(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	t.Run("add and duplicate", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddDeck("Biology"))
		require.ErrorIs(t, l.AddDeck("Biology"), domain.ErrDeckExists)
		require.ErrorIs(t, l.AddDeck(""), domain.ErrDeckNameEmpty)
	})

	t.Run("decks may exist with zero cards", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddDeck("Empty"))
		require.True(t, l.HasDeck("Empty"))
		require.Empty(t, l.DueCards("Empty", now))
	})

	t.Run("default deck is protected", func(t *testing.T) {
		l := New()
		require.ErrorIs(t, l.RemoveDeck(domain.DefaultDeck), domain.ErrDefaultDeckProtected)
		require.ErrorIs(t, l.RenameDeck(domain.DefaultDeck, "Other"), domain.ErrDefaultDeckProtected)
	})

	t.Run("rename cascades to cards", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddDeck("Old"))
		l.AddCard(newCard(t, "Old", "q1", now))
		l.AddCard(newCard(t, domain.DefaultDeck, "q2", now))

		require.NoError(t, l.RenameDeck("Old", "New"))
		require.False(t, l.HasDeck("Old"))
		require.True(t, l.HasDeck("New"))
		require.Len(t, l.DueCards("New", now), 1)
	})

	t.Run("remove cascades card deletion", func(t *testing.T) {
		l := New()
		require.NoError(t, l.AddDeck("Doomed"))
		l.AddCard(newCard(t, "Doomed", "q1", now))
		l.AddCard(newCard(t, "Doomed", "q2", now))
		kept := newCard(t, domain.DefaultDeck, "q3", now)
		l.AddCard(kept)

		require.NoError(t, l.RemoveDeck("Doomed"))
		require.Len(t, l.Cards(), 1)
		require.Equal(t, kept.ID, l.Cards()[0].ID)
	})
}

func TestAddCardRegistersDeck(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	l := New()
	l.AddCard(newCard(t, "History", "q", now))
	require.True(t, l.HasDeck("History"))
}

func TestDuePendingPartition(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	today := domain.StartOfDay(now)

	l := New()

	due1 := newCard(t, domain.DefaultDeck, "due today", now)
	due1.NextReviewAt = today

	due2 := newCard(t, domain.DefaultDeck, "overdue", now)
	due2.NextReviewAt = today.AddDate(0, 0, -7)

	pending := newCard(t, domain.DefaultDeck, "tomorrow", now)
	pending.NextReviewAt = today.AddDate(0, 0, 1)

	otherDeck := newCard(t, "Other", "due elsewhere", now)
	otherDeck.NextReviewAt = today

	l.AddCard(due1)
	l.AddCard(due2)
	l.AddCard(pending)
	l.AddCard(otherDeck)

	dueCards := l.DueCards(domain.DefaultDeck, now)
	require.Len(t, dueCards, 2)
	// Insertion order, no due-date sorting: the card due today was inserted
	// before the overdue one and stays first.
	require.Equal(t, due1.ID, dueCards[0].ID)
	require.Equal(t, due2.ID, dueCards[1].ID)

	pendingCards := l.PendingCards(domain.DefaultDeck, now)
	require.Len(t, pendingCards, 1)
	require.Equal(t, pending.ID, pendingCards[0].ID)
}

func TestDuePartitionIsStableAcrossRecomputation(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	l := New()
	for _, q := range []string{"a", "b", "c", "d"} {
		l.AddCard(newCard(t, domain.DefaultDeck, q, now))
	}

	first := l.DueCards(domain.DefaultDeck, now)
	second := l.DueCards(domain.DefaultDeck, now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID,
			"Recomputing the due view with unchanged inputs must keep the ordering")
	}
}

func TestReplaceCard(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	l := New()
	card := newCard(t, domain.DefaultDeck, "q", now)
	l.AddCard(card)

	updated := card.Clone()
	updated.IntervalDays = 5
	require.True(t, l.ReplaceCard(updated))

	got, ok := l.CardByID(card.ID)
	require.True(t, ok)
	require.Equal(t, 5, got.IntervalDays)

	// Re-applying the same patch is idempotent.
	require.True(t, l.ReplaceCard(updated))
	got, _ = l.CardByID(card.ID)
	require.Equal(t, 5, got.IntervalDays)

	require.True(t, l.RemoveCard(card.ID))
	require.False(t, l.ReplaceCard(updated), "Replacing a removed card reports false")
}

func TestChoiceCards(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	l := New()
	l.AddCard(newCard(t, domain.DefaultDeck, "basic", now))

	choice, err := domain.NewCard(
		domain.DefaultDeck,
		domain.KindChoice,
		"q",
		"a",
		[]string{"a", "b"},
		"",
		now,
	)
	require.NoError(t, err)
	l.AddCard(choice)

	pool := l.ChoiceCards(domain.DefaultDeck)
	require.Len(t, pool, 1)
	require.Equal(t, choice.ID, pool[0].ID)
}

func TestNewFromSnapshot(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	orphan := newCard(t, "Unregistered", "q", now)
	l := NewFromSnapshot([]*domain.Card{orphan}, []string{"Listed"})

	require.True(t, l.HasDeck(domain.DefaultDeck))
	require.True(t, l.HasDeck("Listed"))
	require.True(t, l.HasDeck("Unregistered"),
		"Decks referenced by cards are registered even when missing from the saved registry")
}
