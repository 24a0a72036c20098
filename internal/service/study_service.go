package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
)

// ReviewState is a snapshot of the review session for presentation.
type ReviewState struct {
	Active   bool
	Position int
	Size     int
	Finished bool
	Revealed bool
	Selected string
	Answered bool
	Current  *domain.Card
}

// TestState is a snapshot of the test session for presentation.
type TestState struct {
	Status   session.TestStatus
	Position int
	Total    int
	Correct  int
	Current  *domain.Card
	Results  []session.TestResult
}

// StartReview begins a review session over the deck's cards due today,
// replacing any previous session. The due list is snapshotted now and not
// re-queried while the session runs.
func (s *Service) StartReview(deck string, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.HasDeck(deck) {
		return domain.ErrDeckNotFound
	}

	s.review = session.NewReview(s.lib, s.scheduler, deck, today)
	s.logger.Debug("review started",
		slog.String("deck", deck),
		slog.Int("due", s.review.Size()))
	return nil
}

// ReviewReveal shows the current card's answer.
func (s *Service) ReviewReveal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.review != nil {
		s.review.Reveal()
	}
}

// ReviewSelect records a choice for the current choice card.
func (s *Service) ReviewSelect(choice string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.review != nil {
		s.review.Select(choice)
	}
}

// ReviewGrade grades the current card and persists the rescheduled
// collection. Grading without an active session or current card is a no-op.
func (s *Service) ReviewGrade(ctx context.Context, grade domain.Grade, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.review == nil {
		return nil
	}

	if err := s.review.Grade(grade, now); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// ResetReview rewinds the current session to its first card without
// re-snapshotting the due list.
func (s *Service) ResetReview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.review != nil {
		s.review.Reset()
	}
}

// ReviewSnapshot returns the current review state for rendering.
func (s *Service) ReviewSnapshot() ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.review == nil {
		return ReviewState{}
	}

	state := ReviewState{
		Active:   true,
		Position: s.review.Position(),
		Size:     s.review.Size(),
		Finished: s.review.Finished(),
		Revealed: s.review.Revealed(),
	}
	state.Selected, state.Answered = s.review.Selected()
	if card, ok := s.review.Current(); ok {
		state.Current = card
	}
	return state
}

// StartTest begins a test session over the deck's choice cards. An empty
// pool fails with session.ErrEmptyPool and leaves the session idle.
func (s *Service) StartTest(deck string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.HasDeck(deck) {
		return domain.ErrDeckNotFound
	}

	if err := s.test.Start(s.lib.ChoiceCards(deck)); err != nil {
		return err
	}
	s.logger.Debug("test started", slog.String("deck", deck))
	return nil
}

// TestSelect records the answer for the current test card. The first answer
// is final.
func (s *Service) TestSelect(choice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.test.Select(choice)
}

// TestAdvance moves the test to the next card, finishing when the pool is
// exhausted.
func (s *Service) TestAdvance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.test.Advance()
}

// TestRetryWrongOnly restarts the finished test over the incorrectly
// answered cards. session.ErrEmptyPool signals the all-correct outcome.
func (s *Service) TestRetryWrongOnly() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.test.RetryWrongOnly()
}

// TestSnapshot returns the current test state for rendering.
func (s *Service) TestSnapshot() TestState {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct, total := s.test.Score()
	state := TestState{
		Status:   s.test.Status(),
		Position: s.test.Position(),
		Total:    total,
		Correct:  correct,
		Results:  s.test.Results(),
	}
	if card, ok := s.test.Current(); ok {
		state.Current = card
	}
	return state
}
