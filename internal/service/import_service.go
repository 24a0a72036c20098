package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportCSV reads cards from r and adds them to the collection. Each row is
// `deck, kind, question, answer, choices, explanation` with choices
// pipe-delimited; the trailing columns may be omitted for basic cards. The
// deck named in the first column is registered on its first occurrence and
// reused afterwards. Rows that do not form a valid card are skipped and
// counted, not fatal; deeper file-format validation is the importer UI's
// problem, not ours.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, now time.Time) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may omit trailing columns
	reader.TrimLeadingSpace = true

	// Parse the whole file before mutating anything. A read error mid-file
	// must leave the collection exactly as it was, so imported cards are
	// staged and only applied once every row has been read.
	result := &ImportResult{}
	var staged []*domain.Card
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read import data: %w", err)
		}

		card, ok := cardFromRow(row, now)
		if !ok {
			result.Skipped++
			continue
		}

		staged = append(staged, card)
		result.Imported++
	}

	for _, card := range staged {
		s.lib.AddCard(card)
	}

	if result.Imported > 0 {
		s.invalidateReview()
		s.persist(ctx)
	}

	s.logger.Info("import finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// cardFromRow builds a card from one CSV row, reporting false for rows that
// cannot form a valid card.
func cardFromRow(row []string, now time.Time) (*domain.Card, bool) {
	if len(row) < 4 {
		return nil, false
	}

	deck := strings.TrimSpace(row[0])
	kind := domain.CardKind(strings.TrimSpace(row[1]))
	question := row[2]
	answer := row[3]

	var choices []string
	if len(row) > 4 && row[4] != "" {
		choices = strings.Split(row[4], "|")
	}

	var explanation string
	if len(row) > 5 {
		explanation = row[5]
	}

	card, err := domain.NewCard(deck, kind, question, answer, choices, explanation, now)
	if err != nil {
		return nil, false
	}
	return card, true
}
