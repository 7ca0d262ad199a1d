package main

import (
	"errors"
	"net/http"

	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/services/reviews"
)

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	review := app.services.Reviews.Get(r.Context(), id)
	if review == nil {
		app.Http.NotFound(w, r, "review not found")
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) saveReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	var review models.Review
	if err := app.readJSON(w, r, &review); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if err := app.services.Reviews.Save(r.Context(), id, review); err != nil {
		var validationErr *reviews.ValidationError
		if errors.As(err, &validationErr) {
			app.Http.UnprocessableEntity(w, r, validationErr.Fields)
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review saved")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), id); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Review deleted")
}
