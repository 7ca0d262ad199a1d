package filters

import (
	"strings"

	"showtimes/proj/internal/domain/fields"
	"showtimes/proj/internal/domain/models"
)

// MovieFilters holds independently optional criteria. Zero values mean
// "no constraint"; nil pointers leave the rating thresholds unset.
type MovieFilters struct {
	SearchText      string   `schema:"search" json:"search,omitempty"`
	MinImdbRating   *float64 `schema:"min_imdb" json:"min_imdb,omitempty" validate:"omitempty,gte=0,lte=10"`
	MinRottenRating *float64 `schema:"min_rotten" json:"min_rotten,omitempty" validate:"omitempty,gte=0,lte=100"`
	ShowAfter       string   `schema:"show_after" json:"show_after,omitempty" validate:"omitempty,clock"`
	ShowBefore      string   `schema:"show_before" json:"show_before,omitempty" validate:"omitempty,clock"`
	PGRating        string   `schema:"pg_rating" json:"pg_rating,omitempty"`
}

func (f *MovieFilters) IsEmpty() bool {
	return f.SearchText == "" &&
		f.MinImdbRating == nil &&
		f.MinRottenRating == nil &&
		f.ShowAfter == "" &&
		f.ShowBefore == "" &&
		f.PGRating == ""
}

// Apply returns the movies satisfying every active criterion, in input order.
func Apply(movies []models.Movie, f MovieFilters) []models.Movie {
	if f.IsEmpty() {
		return movies
	}
	m := newMatcher(f)
	out := make([]models.Movie, 0, len(movies))
	for i := range movies {
		if m.match(&movies[i]) {
			out = append(out, movies[i])
		}
	}
	return out
}

type matcher struct {
	f          MovieFilters
	search     string
	after      fields.Clock
	before     fields.Clock
	timeWindow bool
}

func newMatcher(f MovieFilters) *matcher {
	return &matcher{
		f:          f,
		search:     strings.ToLower(f.SearchText),
		after:      fields.ParseClock(f.ShowAfter),
		before:     fields.ParseClock(f.ShowBefore),
		timeWindow: f.ShowAfter != "" || f.ShowBefore != "",
	}
}

func (m *matcher) match(movie *models.Movie) bool {
	if m.search != "" && !m.matchText(movie) {
		return false
	}
	if m.f.MinImdbRating != nil && !movie.Ratings.IMDB.AtLeast(*m.f.MinImdbRating) {
		return false
	}
	if m.f.MinRottenRating != nil && !movie.Ratings.RottenCritics.AtLeast(*m.f.MinRottenRating) {
		return false
	}
	if m.timeWindow && !m.matchShowtime(movie) {
		return false
	}
	if m.f.PGRating != "" && movie.Certificate.Label() != m.f.PGRating {
		return false
	}
	return true
}

func (m *matcher) matchText(movie *models.Movie) bool {
	if strings.Contains(strings.ToLower(movie.Title), m.search) {
		return true
	}
	for _, a := range movie.Actors {
		if strings.Contains(strings.ToLower(a.Name), m.search) {
			return true
		}
	}
	for _, d := range movie.Directors {
		if strings.Contains(strings.ToLower(d.Name), m.search) {
			return true
		}
	}
	return false
}

func (m *matcher) matchShowtime(movie *models.Movie) bool {
	for _, st := range movie.Showtimes {
		for _, slot := range st.Schedule {
			if slot.Time.Within(m.after, m.before) {
				return true
			}
		}
	}
	return false
}
