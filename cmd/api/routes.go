package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/upcoming", app.listUpcoming)
			r.Get("/{id}", app.getMovie)
		})
		r.Route("/cinemas", func(r chi.Router) {
			r.Get("/", app.listCinemas)
			r.Get("/{id}/movies", app.listCinemaMovies)
		})
		r.Get("/theaters", app.listTheaters)
		r.Group(func(r chi.Router) {
			r.Use(app.requireToken)
			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", app.listFavorites)
				r.Post("/", app.addFavorite)
				r.Put("/", app.reorderFavorites)
				r.Get("/{id}", app.isFavorite)
				r.Delete("/{id}", app.removeFavorite)
			})
			r.Route("/reviews/{id}", func(r chi.Router) {
				r.Get("/", app.getReview)
				r.Put("/", app.saveReview)
				r.Delete("/", app.deleteReview)
			})
		})
	})
	return router
}
