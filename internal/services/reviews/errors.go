package reviews

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidReview = errors.New("invalid review")
	ErrInvalidRating = errors.New("rating must be an integer from 0 to 5")
	ErrMissingID     = errors.New("movie id is required")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidReview, e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidReview {
		return true
	}
	_, badRating := e.Fields["rating"]
	return target == ErrInvalidRating && badRating
}
