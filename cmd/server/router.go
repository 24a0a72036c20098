package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/youbo0129ueno-star/memory-anki/internal/api"
	apiMiddleware "github.com/youbo0129ueno-star/memory-anki/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	deckHandler := api.NewDeckHandler(app.svc, app.logger)
	cardHandler := api.NewCardHandler(app.svc, app.logger)
	studyHandler := api.NewStudyHandler(app.svc, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Deck management
		r.Get("/decks", deckHandler.ListDecks)
		r.Post("/decks", deckHandler.CreateDeck)
		r.Put("/decks/{name}", deckHandler.RenameDeck)
		r.Delete("/decks/{name}", deckHandler.DeleteDeck)
		r.Get("/decks/{name}/due", deckHandler.DueCards)
		r.Get("/decks/{name}/pending", deckHandler.PendingCards)

		// Card management
		r.Get("/cards", cardHandler.ListCards)
		r.Post("/cards", cardHandler.CreateCard)
		r.Put("/cards/{id}", cardHandler.EditCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)
		r.Post("/cards/import", cardHandler.ImportCards)

		// Review sessions
		r.Post("/review", studyHandler.StartReview)
		r.Get("/review", studyHandler.GetReview)
		r.Post("/review/reveal", studyHandler.RevealAnswer)
		r.Post("/review/select", studyHandler.SelectReviewChoice)
		r.Post("/review/grade", studyHandler.GradeCard)
		r.Post("/review/reset", studyHandler.ResetReview)

		// Test sessions
		r.Post("/test", studyHandler.StartTest)
		r.Get("/test", studyHandler.GetTest)
		r.Post("/test/select", studyHandler.SelectTestChoice)
		r.Post("/test/advance", studyHandler.AdvanceTest)
		r.Post("/test/retry-wrong", studyHandler.RetryWrongOnly)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
