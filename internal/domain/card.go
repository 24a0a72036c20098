package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckEmpty is returned when a card references no deck.
	ErrCardDeckEmpty = errors.New("card deck cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer is empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardKindInvalid is returned when a card's kind is not a known variant.
	ErrCardKindInvalid = errors.New("card kind must be basic or choice")

	// ErrCardTooFewChoices is returned when a choice card has fewer than two options.
	ErrCardTooFewChoices = errors.New("choice card must have at least 2 options")

	// ErrCardAnswerNotInChoices is returned when a choice card's answer does not
	// appear among its options exactly once.
	ErrCardAnswerNotInChoices = errors.New("choice card answer must appear in options exactly once")

	// ErrCardInvalidInterval is returned when a card's interval is negative.
	ErrCardInvalidInterval = errors.New("card interval must be greater than or equal to 0")
)

// CardKind distinguishes the card variants. Every switch over a CardKind must
// be exhaustive so that adding a variant forces an audit of all call sites.
type CardKind string

// Possible card kinds
const (
	// KindBasic is a free-recall card: the answer is a single string revealed
	// on demand.
	KindBasic CardKind = "basic"

	// KindChoice is a multiple-choice card: the answer must be selected from
	// the card's Choices, which contain the correct answer exactly once.
	KindChoice CardKind = "choice"
)

// IsValid reports whether the kind is a known variant.
func (k CardKind) IsValid() bool {
	switch k {
	case KindBasic, KindChoice:
		return true
	default:
		return false
	}
}

// Card is the unit of study. Identity and display text are immutable after
// creation; the scheduling fields (IntervalDays, NextReviewAt, LastReviewedAt,
// ReviewCount) are mutated only through the srs package.
//
// Question, Answer and Explanation may embed math markup; the domain treats
// them as opaque strings.
type Card struct {
	ID             uuid.UUID  `json:"id"`
	Deck           string     `json:"deck"`
	Kind           CardKind   `json:"kind"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Choices        []string   `json:"choices,omitempty"`
	Explanation    string     `json:"explanation,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	IntervalDays   int        `json:"interval_days"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `json:"review_count"`
}

// NewCard creates a card in the given deck with a fresh schedule: an interval
// of one day and a next-review date of today, which makes the card immediately
// due. For choice cards, choices must contain the answer exactly once.
// Returns an error if validation fails.
func NewCard(
	deck string,
	kind CardKind,
	question, answer string,
	choices []string,
	explanation string,
	now time.Time,
) (*Card, error) {
	card := &Card{
		ID:           uuid.New(),
		Deck:         deck,
		Kind:         kind,
		Question:     question,
		Answer:       answer,
		Choices:      choices,
		Explanation:  explanation,
		CreatedAt:    now,
		NextReviewAt: StartOfDay(now),
		IntervalDays: 1,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Deck == "" {
		return ErrCardDeckEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if c.IntervalDays < 0 {
		return ErrCardInvalidInterval
	}

	switch c.Kind {
	case KindBasic:
		return nil
	case KindChoice:
		if len(c.Choices) < 2 {
			return ErrCardTooFewChoices
		}
		matches := 0
		for _, choice := range c.Choices {
			if choice == c.Answer {
				matches++
			}
		}
		if matches != 1 {
			return ErrCardAnswerNotInChoices
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrCardKindInvalid, c.Kind)
	}
}

// IsDue reports whether the card is eligible for review on the given day.
// Due-ness is a day-granularity predicate: the comparison is made against the
// start of the given day, not the precise instant.
func (c *Card) IsDue(today time.Time) bool {
	return !c.NextReviewAt.After(StartOfDay(today))
}

// Clone returns a deep copy of the card. Choices are copied so the clone can
// be edited without aliasing the original.
func (c *Card) Clone() *Card {
	clone := *c
	if c.Choices != nil {
		clone.Choices = append([]string(nil), c.Choices...)
	}
	if c.LastReviewedAt != nil {
		at := *c.LastReviewedAt
		clone.LastReviewedAt = &at
	}
	return &clone
}

// StartOfDay truncates an instant to midnight in its location. All due-date
// comparisons and next-review computations go through this truncation so that
// scheduling works in whole calendar days.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
