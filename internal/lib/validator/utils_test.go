package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Rating     int    `json:"rating" validate:"gte=0,lte=5"`
	ShowAfter  string `schema:"show_after" validate:"omitempty,clock"`
	PosterURL  string `validate:"omitempty,url" errorMsg:"poster must be a link"`
	SearchText string `validate:"max=3"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	assert.Nil(t, ValidateStruct(v, sample{Rating: 3, ShowAfter: "18:30"}))

	errs := ValidateStruct(v, sample{Rating: 6, ShowAfter: "25:00", PosterURL: "nope", SearchText: "long"})
	assert.Equal(t, map[string]string{
		"rating":      "Value should be less than or equal to 5",
		"show_after":  "Value must be a time of day in HH:MM format",
		"poster_url":  "poster must be a link",
		"search_text": "The maximum length is 3",
	}, errs)

	errs = ValidateStruct(v, &sample{Rating: -1})
	assert.Equal(t, map[string]string{"rating": "Value should be greater than or equal to 0"}, errs)
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"Rating":        "rating",
		"MinImdbRating": "min_imdb_rating",
		"PosterURL":     "poster_url",
		"PGRating":      "pg_rating",
	}
	for in, want := range cases {
		assert.Equal(t, want, camelToSnake(in), in)
	}
}

func TestValidateClock(t *testing.T) {
	v := New()
	type window struct {
		ShowAfter string `schema:"show_after" validate:"omitempty,clock"`
	}
	for _, ok := range []string{"", "00:00", "09:30", "23:59"} {
		assert.Nil(t, ValidateStruct(v, window{ShowAfter: ok}), ok)
	}
	for _, bad := range []string{"20:00junk", " 20:00", "9:30", "24:00", "12:60", "1200"} {
		assert.Contains(t, ValidateStruct(v, window{ShowAfter: bad}), "show_after", bad)
	}
}
