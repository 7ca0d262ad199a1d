package cinemas

import (
	"context"
	"log/slog"

	"showtimes/proj/internal/domain/models"

	"golang.org/x/text/language"
)

type ListingsProvider interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Theaters(ctx context.Context) ([]models.Theater, error)
}

type CinemaService struct {
	log      *slog.Logger
	listings ListingsProvider
	locale   language.Tag
}

func New(log *slog.Logger, listings ListingsProvider, locale language.Tag) *CinemaService {
	return &CinemaService{
		log:      log,
		listings: listings,
		locale:   locale,
	}
}

func (s *CinemaService) Groups(ctx context.Context) ([]CinemaGroup, error) {
	const op = "cinemas.CinemaService.Groups"
	log := s.log.With("op", op)
	movies, err := s.listings.Movies(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return GroupByCinema(movies, s.locale), nil
}

func (s *CinemaService) MoviesAt(ctx context.Context, cinemaID int) ([]models.Movie, error) {
	const op = "cinemas.CinemaService.MoviesAt"
	log := s.log.With("op", op, "cinema_id", cinemaID)
	movies, err := s.listings.Movies(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return MoviesAtCinema(movies, cinemaID), nil
}

// Theaters lists cinema metadata ordered by name.
func (s *CinemaService) Theaters(ctx context.Context) ([]models.Theater, error) {
	const op = "cinemas.CinemaService.Theaters"
	log := s.log.With("op", op)
	theaters, err := s.listings.Theaters(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	sortTheaters(theaters, s.locale)
	return theaters, nil
}
