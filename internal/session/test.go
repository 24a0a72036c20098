package session

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// Test session errors. Both are recoverable, user-facing conditions: the
// session state is left untouched and the caller re-prompts.
var (
	// ErrEmptyPool is returned when starting or retrying a test with no
	// eligible cards. On retry this is the normal all-correct outcome, which
	// callers must present differently from an empty starting pool.
	ErrEmptyPool = errors.New("test pool is empty")

	// ErrNoSelection is returned when advancing past a card that has not
	// been answered yet.
	ErrNoSelection = errors.New("no choice selected for the current card")
)

// TestStatus is the lifecycle state of a test session.
type TestStatus string

// Test session states
const (
	TestIdle       TestStatus = "idle"
	TestInProgress TestStatus = "in_progress"
	TestFinished   TestStatus = "finished"
)

// TestResult records one answered card.
type TestResult struct {
	CardID    uuid.UUID `json:"card_id"`
	Selected  string    `json:"selected"`
	IsCorrect bool      `json:"is_correct"`
}

// Test runs a shuffled multiple-choice quiz over a snapshot of choice cards.
// Answers are scored by exact string equality against the card's answer and
// accumulate in an ordered result list; the scheduler is never involved, so
// testing does not move review dates.
type Test struct {
	rng *rand.Rand

	status   TestStatus
	pool     []*domain.Card
	pos      int
	results  []TestResult
	answered bool
}

// NewTest creates an idle test session. The random source drives the
// shuffle; tests inject a seeded one for deterministic ordering.
func NewTest(rng *rand.Rand) *Test {
	return &Test{
		rng:    rng,
		status: TestIdle,
	}
}

// Start shuffles a copy of the pool and begins the quiz. An empty pool fails
// with ErrEmptyPool and leaves the session in its previous state.
func (t *Test) Start(pool []*domain.Card) error {
	if len(pool) == 0 {
		return ErrEmptyPool
	}

	t.pool = append([]*domain.Card(nil), pool...)
	shuffle(t.pool, t.rng)
	t.pos = 0
	t.results = nil
	t.answered = false
	t.status = TestInProgress
	return nil
}

// shuffle permutes cards in place with an unbiased Fisher-Yates: indices run
// from the last down to the first, each swapped with a uniformly chosen
// index in [0, i] inclusive.
func shuffle(cards []*domain.Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Current returns the card awaiting an answer, or false when the session is
// not in progress.
func (t *Test) Current() (*domain.Card, bool) {
	if t.status != TestInProgress || t.pos >= len(t.pool) {
		return nil, false
	}
	return t.pool[t.pos], true
}

// Select records the answer for the current card. The first answer is final:
// further selections for the same card are ignored, as is any selection
// while the session is not in progress. Correctness is exact string equality
// with the card's answer.
func (t *Test) Select(choice string) {
	card, ok := t.Current()
	if !ok || t.answered {
		return
	}

	t.results = append(t.results, TestResult{
		CardID:    card.ID,
		Selected:  choice,
		IsCorrect: choice == card.Answer,
	})
	t.answered = true
}

// Advance moves to the next card. It fails with ErrNoSelection if the
// current card has not been answered. Advancing past the last card finishes
// the session.
func (t *Test) Advance() error {
	if t.status != TestInProgress {
		return nil
	}
	if !t.answered {
		return ErrNoSelection
	}

	t.pos++
	if t.pos >= len(t.pool) {
		t.status = TestFinished
		return nil
	}
	t.answered = false
	return nil
}

// RetryWrongOnly restarts the session scoped to the cards of the current
// pool that were answered incorrectly. Only valid once the session is
// finished; otherwise it is ignored. When every answer was correct the
// derived pool is empty and ErrEmptyPool is returned, a normal terminal
// outcome the caller presents as "all correct", not a failure.
func (t *Test) RetryWrongOnly() error {
	if t.status != TestFinished {
		return nil
	}

	wrong := make(map[uuid.UUID]bool)
	for _, result := range t.results {
		if !result.IsCorrect {
			wrong[result.CardID] = true
		}
	}

	var subset []*domain.Card
	for _, card := range t.pool {
		if wrong[card.ID] {
			subset = append(subset, card)
		}
	}

	return t.Start(subset)
}

// Status returns the session lifecycle state.
func (t *Test) Status() TestStatus {
	return t.status
}

// Results returns the accumulated answers in the order they were given.
func (t *Test) Results() []TestResult {
	return append([]TestResult(nil), t.results...)
}

// Score returns the number of correct answers and the pool size.
func (t *Test) Score() (correct, total int) {
	for _, result := range t.results {
		if result.IsCorrect {
			correct++
		}
	}
	return correct, len(t.pool)
}

// Pool returns the shuffled card order of the current run.
func (t *Test) Pool() []*domain.Card {
	return append([]*domain.Card(nil), t.pool...)
}

// Position returns the index of the card awaiting an answer.
func (t *Test) Position() int {
	return t.pos
}
