package movies

import (
	"context"
	"log/slog"
	"sort"

	"showtimes/proj/internal/domain/filters"
	"showtimes/proj/internal/domain/models"
)

type MoviesProvider interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Upcoming(ctx context.Context) ([]models.Movie, error)
}

type MovieService struct {
	log      *slog.Logger
	provider MoviesProvider
}

func New(log *slog.Logger, provider MoviesProvider) *MovieService {
	return &MovieService{
		log:      log,
		provider: provider,
	}
}

// List returns the movies currently showing that satisfy every active
// criterion in f. An empty filter returns the upstream list as is.
func (s *MovieService) List(ctx context.Context, f filters.MovieFilters) ([]models.Movie, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op)
	movies, err := s.provider.Movies(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	res := filters.Apply(movies, f)
	log.Debug("movies listed", "total", len(movies), "matched", len(res))
	return res, nil
}

// Get looks a movie up by its upstream object id among the movies showing
// and, failing that, the upcoming ones.
func (s *MovieService) Get(ctx context.Context, objectID string) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", objectID)
	for _, fetch := range []func(context.Context) ([]models.Movie, error){s.provider.Movies, s.provider.Upcoming} {
		movies, err := fetch(ctx)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}
		for i := range movies {
			if movies[i].ObjectID == objectID {
				return &movies[i], nil
			}
		}
	}
	log.Info("movie not found")
	return nil, ErrMovieNotFound
}

// Upcoming returns upcoming movies ordered by release date. Movies without a
// parsable date come first; ties keep upstream order.
func (s *MovieService) Upcoming(ctx context.Context) ([]models.Movie, error) {
	const op = "movies.MovieService.Upcoming"
	log := s.log.With("op", op)
	movies, err := s.provider.Upcoming(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].ReleaseDate().Time.Before(movies[j].ReleaseDate().Time)
	})
	return movies, nil
}
