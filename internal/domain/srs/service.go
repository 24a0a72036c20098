package srs

import (
	"errors"
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// Common errors
var (
	ErrNilCard      = errors.New("card cannot be nil")
	ErrInvalidGrade = errors.New("invalid review grade")
)

// Service defines the interface for scheduler operations.
type Service interface {
	// Grade computes a card's next scheduling state for a review graded at
	// the given instant. It returns a new card value and never mutates its
	// input; the caller applies the result back into the card set.
	//
	// The current time is an explicit parameter so that scheduling is
	// deterministic and testable without touching the system clock. Over its
	// documented domain (non-negative interval, one of the four grades) the
	// computation is total: the only errors are a nil card or an unknown
	// grade.
	Grade(card *domain.Card, grade domain.Grade, now time.Time) (*domain.Card, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewService creates the scheduler service.
func NewService() Service {
	return &defaultService{}
}

// Grade implements the Service interface.
func (s *defaultService) Grade(
	card *domain.Card,
	grade domain.Grade,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !grade.IsValid() {
		return nil, ErrInvalidGrade
	}

	return apply(card, grade, now), nil
}
