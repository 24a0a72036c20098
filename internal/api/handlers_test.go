package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youbo0129ueno-star/memory-anki/internal/api"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain/srs"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
	"github.com/youbo0129ueno-star/memory-anki/internal/session"
	"github.com/youbo0129ueno-star/memory-anki/internal/store"
)

// memStore is an in-memory store.Store for handler tests.
type memStore struct {
	cards []*domain.Card
	decks []string
}

func (m *memStore) LoadCards(ctx context.Context) ([]*domain.Card, error) { return m.cards, nil }
func (m *memStore) SaveCards(ctx context.Context, cards []*domain.Card) error {
	m.cards = cards
	return nil
}
func (m *memStore) LoadDecks(ctx context.Context) ([]string, error) { return m.decks, nil }
func (m *memStore) SaveDecks(ctx context.Context, decks []string) error {
	m.decks = decks
	return nil
}

var _ store.Store = (*memStore)(nil)

// newTestRouter builds a router with the same routes the server registers.
func newTestRouter(t *testing.T) (chi.Router, *service.Service) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := service.New(
		context.Background(),
		&memStore{},
		srs.NewService(),
		rand.New(rand.NewSource(1)),
		log,
	)
	require.NoError(t, err)

	deckHandler := api.NewDeckHandler(svc, log)
	cardHandler := api.NewCardHandler(svc, log)
	studyHandler := api.NewStudyHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/decks", deckHandler.ListDecks)
	r.Post("/decks", deckHandler.CreateDeck)
	r.Put("/decks/{name}", deckHandler.RenameDeck)
	r.Delete("/decks/{name}", deckHandler.DeleteDeck)
	r.Get("/decks/{name}/due", deckHandler.DueCards)
	r.Post("/cards", cardHandler.CreateCard)
	r.Put("/cards/{id}", cardHandler.EditCard)
	r.Delete("/cards/{id}", cardHandler.DeleteCard)
	r.Post("/cards/import", cardHandler.ImportCards)
	r.Post("/review", studyHandler.StartReview)
	r.Post("/review/reveal", studyHandler.RevealAnswer)
	r.Post("/review/grade", studyHandler.GradeCard)
	r.Post("/test", studyHandler.StartTest)
	r.Post("/test/select", studyHandler.SelectTestChoice)
	r.Post("/test/advance", studyHandler.AdvanceTest)
	r.Post("/test/retry-wrong", studyHandler.RetryWrongOnly)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDeckEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/decks", map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate name conflicts
	rec = doJSON(t, router, http.MethodPost, "/decks", map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The default deck cannot be deleted
	rec = doJSON(t, router, http.MethodDelete, "/decks/"+domain.DefaultDeck, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/decks/Go", map[string]string{"name": "Golang"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/decks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var decks []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decks))
	assert.Equal(t, []string{domain.DefaultDeck, "Golang"}, decks)
}

func TestCardEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/cards", map[string]any{
		"deck":     "Go",
		"kind":     "basic",
		"question": "What does iota do?",
		"answer":   "Generates successive untyped integer constants",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID           string `json:"id"`
		IntervalDays int    `json:"interval_days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.IntervalDays)

	// A new card is immediately due in its deck
	rec = doJSON(t, router, http.MethodGet, "/decks/Go/due", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var due []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &due))
	assert.Len(t, due, 1)

	// Unknown kind fails request validation
	rec = doJSON(t, router, http.MethodPost, "/cards", map[string]any{
		"deck":     "Go",
		"kind":     "cloze",
		"question": "q",
		"answer":   "a",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A choice card needs at least two options
	rec = doJSON(t, router, http.MethodPost, "/cards", map[string]any{
		"deck":     "Go",
		"kind":     "choice",
		"question": "q",
		"answer":   "a",
		"choices":  []string{"a"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Editing a malformed ID is a bad request, an unknown ID a 404
	rec = doJSON(t, router, http.MethodPut, "/cards/not-a-uuid", map[string]any{
		"question": "q",
		"answer":   "a",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut,
		"/cards/6ba7b810-9dad-11d1-80b4-00c04fd430c8", map[string]any{
			"question": "q",
			"answer":   "a",
		})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/cards/"+created.ID, map[string]any{
		"question": "What is iota?",
		"answer":   "A constant generator",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/cards/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestImportEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	csv := strings.Join([]string{
		"Go,basic,What is a goroutine?,A lightweight thread",
		"Go,choice,Which keyword starts one?,go,go|run|spawn,The go statement",
		"Go,basic,missing answer",
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/cards/import", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestReviewEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// Unknown deck
	rec := doJSON(t, router, http.MethodPost, "/review", map[string]string{"deck": "Nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/cards", map[string]any{
		"deck":     "Go",
		"kind":     "basic",
		"question": "q",
		"answer":   "a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/review", map[string]string{"deck": "Go"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state struct {
		Active   bool `json:"active"`
		Size     int  `json:"size"`
		Revealed bool `json:"revealed"`
		Finished bool `json:"finished"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Active)
	assert.Equal(t, 1, state.Size)

	rec = doJSON(t, router, http.MethodPost, "/review/reveal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Revealed)

	// Bad grade value fails request validation before reaching the session
	rec = doJSON(t, router, http.MethodPost, "/review/grade", map[string]string{"grade": "perfect"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/review/grade", map[string]string{"grade": "good"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Finished)
}

func TestTestEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// No choice cards yet
	rec := doJSON(t, router, http.MethodPost, "/test", map[string]string{"deck": domain.DefaultDeck})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, http.MethodPost, "/cards", map[string]any{
			"deck":     domain.DefaultDeck,
			"kind":     "choice",
			"question": fmt.Sprintf("q%d", i),
			"answer":   "right",
			"choices":  []string{"right", "wrong"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/test", map[string]string{"deck": domain.DefaultDeck})
	require.Equal(t, http.StatusOK, rec.Code)

	var state struct {
		Status  string `json:"status"`
		Total   int    `json:"total"`
		Correct int    `json:"correct"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "in_progress", state.Status)

	// Advancing without a selection is rejected
	rec = doJSON(t, router, http.MethodPost, "/test/advance", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, http.MethodPost, "/test/select", map[string]string{"choice": "right"})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(t, router, http.MethodPost, "/test/advance", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "finished", state.Status)
	assert.Equal(t, 2, state.Correct)

	// Retrying after a perfect run is the all-correct outcome, not the
	// empty-pool failure, and the message must let clients tell them apart.
	rec = doJSON(t, router, http.MethodPost, "/test/retry-wrong", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var apiErr struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "All answers were correct", apiErr.Error)
	assert.NotEqual(t, api.GetSafeErrorMessage(session.ErrEmptyPool), apiErr.Error)
}
