package services

import (
	"context"
	"log/slog"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"showtimes/proj/internal/api/tasks"
	"showtimes/proj/internal/clients/kvikmyndir"
	"showtimes/proj/internal/config"
	"showtimes/proj/internal/services/cinemas"
	"showtimes/proj/internal/services/favorites"
	"showtimes/proj/internal/services/movies"
	"showtimes/proj/internal/services/reviews"
	"showtimes/proj/internal/storage"
)

type TaskExecutor interface {
	Add(task tasks.Task) error
}

type Services struct {
	log       *slog.Logger
	Upstream  *kvikmyndir.Client
	Movies    *movies.MovieService
	Cinemas   *cinemas.CinemaService
	Favorites *favorites.FavoriteService
	Reviews   *reviews.ReviewService
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	store storage.KeyValue,
	validator *govalidator.Validate,
	opts ...kvikmyndir.Option,
) *Services {
	upstreamCfg := cfg.Clients.Kvikmyndir
	clientOpts := append([]kvikmyndir.Option{
		kvikmyndir.WithHTTPClient(&http.Client{Timeout: upstreamCfg.Timeout}),
		kvikmyndir.WithTokenTTL(upstreamCfg.TokenTTL),
	}, opts...)
	upstream := kvikmyndir.New(
		log,
		upstreamCfg.BaseURL,
		kvikmyndir.Credentials{Username: upstreamCfg.Username, Password: upstreamCfg.Password},
		clientOpts...,
	)
	return &Services{
		log:       log,
		Upstream:  upstream,
		Movies:    movies.New(log, upstream),
		Cinemas:   cinemas.New(log, upstream, Locale(cfg.Locale)),
		Favorites: favorites.New(log, store),
		Reviews:   reviews.New(log, store, validator),
	}
}

// Locale parses a BCP 47 tag, falling back to Icelandic.
func Locale(tag string) language.Tag {
	t, err := language.Parse(tag)
	if err != nil {
		return language.Icelandic
	}
	return t
}

// WarmUp queues an upstream authentication so the first user request finds
// a cached token.
func (s *Services) WarmUp(executor TaskExecutor) error {
	const op = "services.Services.WarmUp"
	log := s.log.With("op", op)
	return executor.Add(tasks.Task{
		Name: "kvikmyndir token warm-up",
		Run: func(ctx context.Context) error {
			if _, err := s.Upstream.GetAccessToken(ctx); err != nil {
				return err
			}
			log.Info("upstream token ready")
			return nil
		},
	})
}
