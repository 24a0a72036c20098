package api

import (
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
)

// Common request/response structures

// CreateDeckRequest defines the payload for creating a deck.
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameDeckRequest defines the payload for renaming a deck.
type RenameDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Deck        string   `json:"deck"        validate:"required"`
	Kind        string   `json:"kind"        validate:"required,oneof=basic choice"`
	Question    string   `json:"question"    validate:"required"`
	Answer      string   `json:"answer"      validate:"required"`
	Choices     []string `json:"choices,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// EditCardRequest defines the payload for editing a card.
type EditCardRequest struct {
	Question    string   `json:"question" validate:"required"`
	Answer      string   `json:"answer"   validate:"required"`
	Choices     []string `json:"choices,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// StartSessionRequest selects the deck for a review or test session.
type StartSessionRequest struct {
	Deck string `json:"deck" validate:"required"`
}

// SelectChoiceRequest carries the user's selected option.
type SelectChoiceRequest struct {
	Choice string `json:"choice" validate:"required"`
}

// GradeRequest carries the review grade for the current card.
type GradeRequest struct {
	Grade string `json:"grade" validate:"required,oneof=again hard good easy"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID             string     `json:"id"`
	Deck           string     `json:"deck"`
	Kind           string     `json:"kind"`
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

// ReviewStateResponse represents the review session state.
type ReviewStateResponse struct {
	Active   bool          `json:"active"`
	Position int           `json:"position"`
	Size     int           `json:"size"`
	Finished bool          `json:"finished"`
	Revealed bool          `json:"revealed"`
	Selected string        `json:"selected,omitempty"`
	Answered bool          `json:"answered"`
	Current  *CardResponse `json:"current,omitempty"`
}

// TestStateResponse represents the test session state.
type TestStateResponse struct {
	Status   string               `json:"status"`
	Position int                  `json:"position"`
	Total    int                  `json:"total"`
	Correct  int                  `json:"correct"`
	Current  *CardResponse        `json:"current,omitempty"`
	Results  []session.TestResult `json:"results"`
}

// cardToResponse transforms a domain card into its API representation.
func cardToResponse(card *domain.Card) *CardResponse {
	if card == nil {
		return nil
	}
	return &CardResponse{
		ID:             card.ID.String(),
		Deck:           card.Deck,
		Kind:           string(card.Kind),
		Question:       card.Question,
		Answer:         card.Answer,
		Choices:        card.Choices,
		Explanation:    card.Explanation,
		CreatedAt:      card.CreatedAt,
		NextReviewAt:   card.NextReviewAt,
		IntervalDays:   card.IntervalDays,
		LastReviewedAt: card.LastReviewedAt,
		ReviewCount:    card.ReviewCount,
	}
}

// cardsToResponse transforms a card list, preserving order.
func cardsToResponse(cards []*domain.Card) []*CardResponse {
	out := make([]*CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

// reviewStateToResponse transforms a review snapshot.
func reviewStateToResponse(state service.ReviewState) ReviewStateResponse {
	return ReviewStateResponse{
		Active:   state.Active,
		Position: state.Position,
		Size:     state.Size,
		Finished: state.Finished,
		Revealed: state.Revealed,
		Selected: state.Selected,
		Answered: state.Answered,
		Current:  cardToResponse(state.Current),
	}
}

// testStateToResponse transforms a test snapshot.
func testStateToResponse(state service.TestState) TestStateResponse {
	results := state.Results
	if results == nil {
		results = []session.TestResult{}
	}
	return TestStateResponse{
		Status:   string(state.Status),
		Position: state.Position,
		Total:    state.Total,
		Correct:  state.Correct,
		Current:  cardToResponse(state.Current),
		Results:  results,
	}
}
