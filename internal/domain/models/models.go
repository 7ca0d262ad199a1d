package models

import (
	"encoding/json"
	"strings"

	"showtimes/proj/internal/domain/fields"
)

type Movie struct {
	ObjectID          string              `json:"_id"`                  // Upstream document id, identity for favorites and reviews
	ID                int                 `json:"id"`                   // Numeric listing id, not unique across listings
	Title             string              `json:"title"`                // Movie title
	Year              string              `json:"year"`                 // Release year as shipped by the API
	AlternativeTitles string              `json:"alternativeTitles,omitempty"`
	Plot              string              `json:"plot,omitempty"`
	Poster            string              `json:"poster,omitempty"`
	DurationMinutes   fields.MovieRuntime `json:"durationMinutes"`
	Genres            []Genre             `json:"genres"`
	Actors            []Person            `json:"actors_abridged"`
	Directors         []Person            `json:"directors_abridged"`
	Certificate       *Certificate        `json:"certificate,omitempty"` // Age rating, absent for unrated listings
	IDs               ExternalIDs         `json:"ids"`
	Ratings           Ratings             `json:"ratings"`
	Showtimes         []Showtime          `json:"showtimes"`
	OMDB              []OMDB              `json:"omdb,omitempty"`
	Trailers          []json.RawMessage   `json:"trailers,omitempty"`
}

type Person struct {
	Name string `json:"name"`
}

type Genre struct {
	ID     int    `json:"ID"`
	Name   string `json:"Name"`
	NameEN string `json:"NameEN"`
}

// Certificate is the localized age rating, e.g. {"is": "12 ára", "color": "yellow"}.
type Certificate struct {
	IS     string `json:"is"`
	Color  string `json:"color"`
	Number string `json:"number,omitempty"`
}

// Label is the leading token of the localized rating ("12" for "12 ára").
func (c *Certificate) Label() string {
	if c == nil {
		return ""
	}
	tokens := strings.Fields(c.IS)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

type ExternalIDs struct {
	IMDB   string `json:"imdb,omitempty"`
	Rotten string `json:"rotten,omitempty"`
	TMDB   string `json:"tmdb,omitempty"`
}

type Ratings struct {
	IMDB           fields.Score `json:"imdb"`
	RottenAudience fields.Score `json:"rotten_audience"`
	RottenCritics  fields.Score `json:"rotten_critics"`
}

type Cinema struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Showtime struct {
	Cinema     Cinema         `json:"cinema"`
	CinemaName string         `json:"cinema_name,omitempty"`
	Schedule   []ScheduleSlot `json:"schedule"`
}

type ScheduleSlot struct {
	Time        fields.Clock `json:"time"`
	PurchaseURL string       `json:"purchase_url"`
	Info        string       `json:"info"`
}

// OMDB carries the subset of the embedded OMDb record the app reads.
type OMDB struct {
	Title      string             `json:"Title,omitempty"`
	Year       string             `json:"Year,omitempty"`
	Rated      string             `json:"Rated,omitempty"`
	Released   fields.ReleaseDate `json:"Released"`
	Runtime    string             `json:"Runtime,omitempty"`
	Genre      string             `json:"Genre,omitempty"`
	Director   string             `json:"Director,omitempty"`
	Actors     string             `json:"Actors,omitempty"`
	Plot       string             `json:"Plot,omitempty"`
	Language   string             `json:"Language,omitempty"`
	Country    string             `json:"Country,omitempty"`
	Poster     string             `json:"Poster,omitempty"`
	IMDBRating string             `json:"imdbRating,omitempty"`
	IMDBID     string             `json:"imdbID,omitempty"`
}

// ReleaseDate is the OMDb release date of the first embedded record.
func (m *Movie) ReleaseDate() fields.ReleaseDate {
	if len(m.OMDB) == 0 {
		return fields.ReleaseDate{}
	}
	return m.OMDB[0].Released
}

type Theater struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
	GoogleMap   string `json:"google_map"`
}

// WebsiteURL returns Website with an https scheme when none is given.
func (t *Theater) WebsiteURL() string {
	site := strings.TrimSpace(t.Website)
	if site == "" {
		return ""
	}
	if strings.HasPrefix(site, "http://") || strings.HasPrefix(site, "https://") {
		return site
	}
	return "https://" + site
}

type Review struct {
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
	Text   string `json:"text" validate:"max=2000"`
}
