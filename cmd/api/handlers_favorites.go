package main

import (
	"errors"
	"net/http"

	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/services/favorites"
)

func (app *Application) listFavorites(w http.ResponseWriter, r *http.Request) {
	list := app.services.Favorites.List(r.Context())
	app.Http.Ok(w, r, envelop{"favorites": newMovieViews(list), "count": len(list)}, "")
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := app.decodeJSON(w, r, &movie, false); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if err := app.services.Favorites.Add(r.Context(), movie); err != nil {
		app.handleFavoritesError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"count": app.services.Favorites.Count(r.Context())}, "Added to favorites")
}

func (app *Application) reorderFavorites(w http.ResponseWriter, r *http.Request) {
	var list []models.Movie
	if err := app.decodeJSON(w, r, &list, false); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if err := app.services.Favorites.Reorder(r.Context(), list); err != nil {
		app.handleFavoritesError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"count": len(list)}, "Favorites reordered")
}

func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	if err := app.services.Favorites.Remove(r.Context(), id); err != nil {
		app.handleFavoritesError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"count": app.services.Favorites.Count(r.Context())}, "Removed from favorites")
}

func (app *Application) isFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	app.Http.Ok(w, r, envelop{"favorite": app.services.Favorites.IsFavorite(r.Context(), id)}, "")
}

func (app *Application) handleFavoritesError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, favorites.ErrMissingID), errors.Is(err, favorites.ErrDuplicateMovies):
		app.Http.UnprocessableEntity(w, r, map[string]string{"_id": err.Error()})
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
