package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/storage"
)

const favoritesKey = "@favorites"

type FavoriteService struct {
	log     *slog.Logger
	storage storage.KeyValue
	// serializes read-modify-write within this process only
	mu sync.Mutex
}

func New(log *slog.Logger, storage storage.KeyValue) *FavoriteService {
	return &FavoriteService{
		log:     log,
		storage: storage,
	}
}

// List returns the stored favorites in user order. Read or decode failures
// are logged and yield an empty list.
func (s *FavoriteService) List(ctx context.Context) []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add appends a snapshot of movie unless a movie with the same id is
// already stored.
func (s *FavoriteService) Add(ctx context.Context, movie models.Movie) error {
	const op = "favorites.FavoriteService.Add"
	log := s.log.With("op", op, "id", movie.ObjectID)
	if movie.ObjectID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.read(ctx)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	if indexOf(list, movie.ObjectID) >= 0 {
		log.Debug("already a favorite")
		return nil
	}
	if err := s.save(ctx, append(list, movie)); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("favorite added")
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, id string) error {
	const op = "favorites.FavoriteService.Remove"
	log := s.log.With("op", op, "id", id)
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.read(ctx)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil
	}
	list = append(list[:i], list[i+1:]...)
	if err := s.save(ctx, list); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("favorite removed")
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, id string) bool {
	return indexOf(s.List(ctx), id) >= 0
}

// Reorder replaces the stored list with movies, keeping their order exactly.
func (s *FavoriteService) Reorder(ctx context.Context, movies []models.Movie) error {
	const op = "favorites.FavoriteService.Reorder"
	log := s.log.With("op", op, "count", len(movies))
	seen := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		if m.ObjectID == "" {
			return ErrMissingID
		}
		if _, ok := seen[m.ObjectID]; ok {
			return ErrDuplicateMovies
		}
		seen[m.ObjectID] = struct{}{}
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, movies); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *FavoriteService) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

// load is the read path: failures are logged and yield an empty list.
func (s *FavoriteService) load(ctx context.Context) []models.Movie {
	const op = "favorites.FavoriteService.load"
	list, err := s.read(ctx)
	if err != nil {
		s.log.With("op", op).Error("failed to read favorites", "errMsg", err.Error())
		return []models.Movie{}
	}
	return list
}

// read returns the stored list for read-modify-write. Only a missing key
// reads as empty; any other failure is returned so nothing gets overwritten.
func (s *FavoriteService) read(ctx context.Context) ([]models.Movie, error) {
	raw, err := s.storage.Get(ctx, favoritesKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Movie{}, nil
		}
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	var list []models.Movie
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if list == nil {
		list = []models.Movie{}
	}
	return list, nil
}

func (s *FavoriteService) save(ctx context.Context, list []models.Movie) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, favoritesKey, raw)
}

func indexOf(list []models.Movie, id string) int {
	for i := range list {
		if list[i].ObjectID == id {
			return i
		}
	}
	return -1
}
