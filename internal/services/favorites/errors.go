package favorites

import "errors"

var (
	ErrMissingID       = errors.New("movie id is required")
	ErrDuplicateMovies = errors.New("favorites list contains the same movie more than once")
)
