// Package postgres implements the persistence interfaces on PostgreSQL.
//
// The snapshot contract of the store package maps onto SQL as replace-on-save:
// each save runs a single transaction that clears the table and writes the
// full set back, keyed by an explicit position column so insertion order
// survives the round trip. Saving the same snapshot twice is idempotent.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/store"
)

// Store implements store.Store on a PostgreSQL database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure Store implements store.Store interface
var _ store.Store = (*Store)(nil)

// NewStore creates a PostgreSQL implementation of the store interfaces.
// It accepts a database connection that should be initialized and managed by
// the caller. If logger is nil, a default logger will be used.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_store")),
	}
}

// LoadCards implements store.CardStore.LoadCards.
// An empty table is empty state, not an error.
func (s *Store) LoadCards(ctx context.Context) ([]*domain.Card, error) {
	return queryCards(ctx, s.db)
}

// queryCards reads the full card set in position order. It accepts a store.DBTX
// so it can run against the connection pool or inside a transaction.
func queryCards(ctx context.Context, q store.DBTX) ([]*domain.Card, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, deck, kind, question, answer, choices, explanation,
		       created_at, next_review_at, interval_days, last_reviewed_at, review_count
		FROM cards
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	return cards, nil
}

// SaveCards implements store.CardStore.SaveCards.
func (s *Store) SaveCards(ctx context.Context, cards []*domain.Card) error {
	err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}

		for i, card := range cards {
			if err := insertCard(ctx, tx, i, card); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	s.logger.Debug("card snapshot saved", slog.Int("cards", len(cards)))
	return nil
}

// LoadDecks implements store.DeckStore.LoadDecks.
func (s *Store) LoadDecks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM decks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	defer rows.Close()

	var decks []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
		}
		decks = append(decks, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	return decks, nil
}

// SaveDecks implements store.DeckStore.SaveDecks.
func (s *Store) SaveDecks(ctx context.Context, decks []string) error {
	err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM decks`); err != nil {
			return err
		}
		for i, name := range decks {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO decks (name, position) VALUES ($1, $2)`, name, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	s.logger.Debug("deck snapshot saved", slog.Int("decks", len(decks)))
	return nil
}

// inTransaction runs fn inside a transaction, rolling back on error.
func (s *Store) inTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}

	return tx.Commit()
}

// insertCard writes one card at the given position.
func insertCard(ctx context.Context, q store.DBTX, position int, card *domain.Card) error {
	var choices any
	if card.Kind == domain.KindChoice {
		encoded, err := json.Marshal(card.Choices)
		if err != nil {
			return err
		}
		choices = encoded
	}

	var lastReviewedAt sql.NullTime
	if card.LastReviewedAt != nil {
		lastReviewedAt = sql.NullTime{Time: *card.LastReviewedAt, Valid: true}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO cards (
			id, position, deck, kind, question, answer, choices, explanation,
			created_at, next_review_at, interval_days, last_reviewed_at, review_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		card.ID, position, card.Deck, string(card.Kind), card.Question, card.Answer,
		choices, card.Explanation, card.CreatedAt, card.NextReviewAt,
		card.IntervalDays, lastReviewedAt, card.ReviewCount)
	return err
}

// scanCard reads one cards row into a domain card.
func scanCard(rows *sql.Rows) (*domain.Card, error) {
	var (
		card           domain.Card
		id             uuid.UUID
		kind           string
		choices        []byte
		lastReviewedAt sql.NullTime
	)

	err := rows.Scan(
		&id, &card.Deck, &kind, &card.Question, &card.Answer, &choices,
		&card.Explanation, &card.CreatedAt, &card.NextReviewAt,
		&card.IntervalDays, &lastReviewedAt, &card.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	card.ID = id
	card.Kind = domain.CardKind(kind)
	if len(choices) > 0 {
		if err := json.Unmarshal(choices, &card.Choices); err != nil {
			return nil, err
		}
	}
	if lastReviewedAt.Valid {
		at := lastReviewedAt.Time
		card.LastReviewedAt = &at
	}

	return &card, nil
}
