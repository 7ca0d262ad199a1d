package cinemas

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"showtimes/proj/internal/domain/fields"
	"showtimes/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func showing(id int, name string, times ...string) models.Showtime {
	st := models.Showtime{Cinema: models.Cinema{ID: id, Name: name}}
	for _, at := range times {
		st.Schedule = append(st.Schedule, models.ScheduleSlot{Time: fields.ParseClock(at)})
	}
	return st
}

func titles(movies []models.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestGroupByCinema(t *testing.T) {
	t.Run("dedup within a cinema", func(t *testing.T) {
		movies := []models.Movie{
			{ObjectID: "a1", Title: "Wicked", Year: "2024", Showtimes: []models.Showtime{
				showing(1, "Alpha", "17:00"),
				showing(1, "Alpha", "21:00"),
			}},
			{ObjectID: "a2", Title: "Wicked", Year: "2024", Showtimes: []models.Showtime{
				showing(1, "Alpha", "19:00"),
			}},
		}
		groups := GroupByCinema(movies, language.English)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"Wicked"}, titles(groups[0].Movies))
		assert.Equal(t, "a1", groups[0].Movies[0].ObjectID)
	})
	t.Run("same title different year", func(t *testing.T) {
		movies := []models.Movie{
			{Title: "Nosferatu", Year: "1922", Showtimes: []models.Showtime{showing(1, "Alpha", "18:00")}},
			{Title: "Nosferatu", Year: "2024", Showtimes: []models.Showtime{showing(1, "Alpha", "21:00")}},
		}
		groups := GroupByCinema(movies, language.English)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Movies, 2)
	})
	t.Run("fan-out", func(t *testing.T) {
		movies := []models.Movie{
			{Title: "Gladiator II", Year: "2024", Showtimes: []models.Showtime{
				showing(2, "B", "20:00"),
				showing(1, "A", "20:00"),
				showing(2, "B", "22:30"),
			}},
			{Title: "Moana 2", Year: "2024", Showtimes: []models.Showtime{showing(2, "B", "13:00")}},
		}
		groups := GroupByCinema(movies, language.English)
		require.Len(t, groups, 2)
		assert.Equal(t, "A", groups[0].CinemaName)
		assert.Equal(t, 1, groups[0].CinemaID)
		assert.Equal(t, []string{"Gladiator II"}, titles(groups[0].Movies))
		assert.Equal(t, "B", groups[1].CinemaName)
		assert.Equal(t, []string{"Gladiator II", "Moana 2"}, titles(groups[1].Movies))
	})
	t.Run("no showtimes", func(t *testing.T) {
		groups := GroupByCinema([]models.Movie{{Title: "Coming Soon"}}, language.English)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})
	t.Run("sorted by name", func(t *testing.T) {
		movies := []models.Movie{
			{Title: "X", Year: "2024", Showtimes: []models.Showtime{showing(9, "Zeta"), showing(3, "Alpha")}},
		}
		groups := GroupByCinema(movies, language.English)
		require.Len(t, groups, 2)
		assert.Equal(t, "Alpha", groups[0].CinemaName)
		assert.Equal(t, "Zeta", groups[1].CinemaName)
	})
	t.Run("locale aware order", func(t *testing.T) {
		movies := []models.Movie{
			{Title: "X", Year: "2024", Showtimes: []models.Showtime{
				showing(1, "Smárabíó"),
				showing(2, "Álfabakki"),
				showing(3, "Bíó Paradís"),
			}},
		}
		groups := GroupByCinema(movies, language.Icelandic)
		names := []string{groups[0].CinemaName, groups[1].CinemaName, groups[2].CinemaName}
		assert.Equal(t, []string{"Álfabakki", "Bíó Paradís", "Smárabíó"}, names)
	})
}

func TestMoviesAtCinema(t *testing.T) {
	movies := []models.Movie{
		{Title: "Flow", Year: "2024", Showtimes: []models.Showtime{showing(1, "A")}},
		{Title: "Conclave", Year: "2024", Showtimes: []models.Showtime{showing(2, "B")}},
		{Title: "Flow", Year: "2024", Showtimes: []models.Showtime{showing(1, "A"), showing(2, "B")}},
		{Title: "Anora", Year: "2024", Showtimes: []models.Showtime{showing(2, "B"), showing(1, "A")}},
	}
	assert.Equal(t, []string{"Flow", "Anora"}, titles(MoviesAtCinema(movies, 1)))
	assert.Equal(t, []string{"Conclave", "Flow", "Anora"}, titles(MoviesAtCinema(movies, 2)))
	assert.Empty(t, MoviesAtCinema(movies, 3))
}

type fakeListings struct {
	movies   []models.Movie
	theaters []models.Theater
	err      error
}

func (f *fakeListings) Movies(context.Context) ([]models.Movie, error) {
	return f.movies, f.err
}

func (f *fakeListings) Theaters(context.Context) ([]models.Theater, error) {
	return f.theaters, f.err
}

func TestCinemaService(t *testing.T) {
	ctx := context.Background()
	listings := &fakeListings{
		movies: []models.Movie{
			{Title: "Flow", Year: "2024", Showtimes: []models.Showtime{showing(1, "Smárabíó")}},
		},
		theaters: []models.Theater{{ID: 1, Name: "Smárabíó"}, {ID: 2, Name: "Álfabakki"}, {ID: 3, Name: "Háskólabíó"}},
	}
	svc := New(slog.Default(), listings, language.Icelandic)

	groups, err := svc.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Smárabíó", groups[0].CinemaName)

	movies, err := svc.MoviesAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Flow"}, titles(movies))

	theaters, err := svc.Theaters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Álfabakki", theaters[0].Name)
	assert.Equal(t, "Háskólabíó", theaters[1].Name)
	assert.Equal(t, "Smárabíó", theaters[2].Name)

	listings.err = errors.New("upstream down")
	_, err = svc.Groups(ctx)
	assert.EqualError(t, err, "upstream down")
}
