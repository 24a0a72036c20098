// Package jsonfile persists the whole collection as a single JSON document
// on disk, the same snapshot shape the desktop build keeps in its app-data
// directory: one object holding the card list and the deck registry.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/store"
)

// payload is the on-disk document.
type payload struct {
	Cards []*domain.Card `json:"cards"`
	Decks []string       `json:"decks"`
}

// Store implements store.Store over one JSON file. Writes go through a
// temporary file and rename so a crash mid-save cannot truncate the
// snapshot.
type Store struct {
	path   string
	logger *slog.Logger
}

// Ensure Store implements store.Store interface
var _ store.Store = (*Store)(nil)

// New creates a JSON file store at the given path. The parent directory is
// created on demand. If logger is nil, a default logger will be used.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "jsonfile_store")),
	}
}

// LoadCards implements store.CardStore.LoadCards.
func (s *Store) LoadCards(ctx context.Context) ([]*domain.Card, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Cards, nil
}

// SaveCards implements store.CardStore.SaveCards.
func (s *Store) SaveCards(ctx context.Context, cards []*domain.Card) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Cards = cards
	return s.write(doc)
}

// LoadDecks implements store.DeckStore.LoadDecks.
func (s *Store) LoadDecks(ctx context.Context) ([]string, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Decks, nil
}

// SaveDecks implements store.DeckStore.SaveDecks.
func (s *Store) SaveDecks(ctx context.Context, decks []string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Decks = decks
	return s.write(doc)
}

// read returns the current document. A missing file is empty state.
func (s *Store) read() (*payload, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &payload{}, nil
		}
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}

	var doc payload
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	return &doc, nil
}

// write replaces the document atomically.
func (s *Store) write(doc *payload) error {
	contents, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	s.logger.Debug("snapshot written",
		slog.String("path", s.path),
		slog.Int("cards", len(doc.Cards)),
		slog.Int("decks", len(doc.Decks)))
	return nil
}
