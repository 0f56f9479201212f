package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rzaytsev/vocab-api/internal/api"
	apimiddleware "github.com/rzaytsev/vocab-api/internal/api/middleware"
)

// setupRouter wires every route onto a chi router with the standard
// middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	wordHandler := api.NewWordHandler(app.learning, app.catalog, app.logger)
	reviewHandler := api.NewReviewHandler(app.engine, app.logger)
	dataHandler := api.NewDataHandler(app.learning, app.preferences, app.catalog, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", wordHandler.ListLevels)
		r.Get("/levels/{level}/words", wordHandler.ListLevelWords)

		r.Route("/learning", func(r chi.Router) {
			r.Post("/words", wordHandler.AddLearningWord)
			r.Get("/words", wordHandler.ListLearningWords)
			r.Delete("/words/{word}", wordHandler.RemoveLearningWord)
			r.Post("/words/{word}/learned", wordHandler.MarkLearned)
			r.Put("/words/{word}/image", wordHandler.SetImage)
			r.Post("/levels/{level}", wordHandler.AddLevel)
			r.Delete("/levels/{level}", wordHandler.RemoveLevel)
		})

		r.Route("/custom", func(r chi.Router) {
			r.Get("/words", wordHandler.ListCustomWords)
			r.Post("/words", wordHandler.AddCustomWord)
			r.Delete("/words/{id}", wordHandler.RemoveCustomWord)
		})

		r.Route("/review/session", func(r chi.Router) {
			r.Post("/", reviewHandler.StartSession)
			r.Get("/", reviewHandler.GetSession)
			r.Delete("/", reviewHandler.AbandonSession)
			r.Post("/answer", reviewHandler.Answer)
			r.Post("/skip", reviewHandler.Skip)
		})

		r.Get("/statistics", dataHandler.GetStatistics)
		r.Get("/progress", dataHandler.GetProgress)
		r.Get("/export", dataHandler.Export)
		r.Post("/import", dataHandler.Import)
		r.Delete("/data", dataHandler.ClearData)
		r.Get("/preferences/theme", dataHandler.GetTheme)
		r.Put("/preferences/theme", dataHandler.SetTheme)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
