package main

import (
	"net/http"

	"github.com/go-chi/render"

	"showtimes/proj/internal/domain/filters"
	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/lib/validator"
	"showtimes/proj/internal/services/cinemas"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, struct {
		Status  string `json:"status"`
		Debug   bool   `json:"debug"`
		Version string `json:"version"`
	}{
		Status:  "available",
		Debug:   app.cfg.Debug,
		Version: version,
	})
}

// movieView adds presentation-only fields to a movie.
type movieView struct {
	models.Movie
	Duration      string `json:"duration"`
	Certification string `json:"certification,omitempty"`
}

func newMovieView(m models.Movie) movieView {
	return movieView{
		Movie:         m,
		Duration:      m.DurationMinutes.String(),
		Certification: m.Certificate.Label(),
	}
}

func newMovieViews(movies []models.Movie) []movieView {
	views := make([]movieView, 0, len(movies))
	for _, m := range movies {
		views = append(views, newMovieView(m))
	}
	return views
}

type theaterView struct {
	models.Theater
	WebsiteURL string `json:"website_url,omitempty"`
}

type cinemaGroupView struct {
	CinemaID   int         `json:"cinemaId"`
	CinemaName string      `json:"cinemaName"`
	Movies     []movieView `json:"movies"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	var f filters.MovieFilters
	if err := app.queryDecoder.Decode(&f, r.URL.Query()); err != nil {
		app.Http.UnprocessableEntity(w, r, queryErrors(err))
		return
	}
	if errs := validator.ValidateStruct(app.validator, f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	movies, err := app.services.Movies.List(r.Context(), f)
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": newMovieViews(movies), "count": len(movies)}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractObjectID(w, r)
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": newMovieView(*movie)}, "")
}

func (app *Application) listUpcoming(w http.ResponseWriter, r *http.Request) {
	movies, err := app.services.Movies.Upcoming(r.Context())
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": newMovieViews(movies), "count": len(movies)}, "")
}

func (app *Application) listCinemas(w http.ResponseWriter, r *http.Request) {
	groups, err := app.services.Cinemas.Groups(r.Context())
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"cinemas": newCinemaGroupViews(groups)}, "")
}

func newCinemaGroupViews(groups []cinemas.CinemaGroup) []cinemaGroupView {
	views := make([]cinemaGroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, cinemaGroupView{
			CinemaID:   g.CinemaID,
			CinemaName: g.CinemaName,
			Movies:     newMovieViews(g.Movies),
		})
	}
	return views
}

func (app *Application) listCinemaMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	movies, err := app.services.Cinemas.MoviesAt(r.Context(), id)
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": newMovieViews(movies), "count": len(movies)}, "")
}

func (app *Application) listTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := app.services.Cinemas.Theaters(r.Context())
	if err != nil {
		app.handleUpstreamError(w, r, err)
		return
	}
	views := make([]theaterView, 0, len(theaters))
	for _, t := range theaters {
		views = append(views, theaterView{Theater: t, WebsiteURL: t.WebsiteURL()})
	}
	app.Http.Ok(w, r, envelop{"theaters": views}, "")
}
