package main

import (
	"log/slog"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"showtimes/proj/internal/api/tasks"
	"showtimes/proj/internal/config"
	"showtimes/proj/internal/services"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
	bgTasks      *tasks.BackgroundTasks
}

func NewApplication(
	cfg *config.Config,
	log *slog.Logger,
	services *services.Services,
	validator *govalidator.Validate,
	bgTasks *tasks.BackgroundTasks,
) *Application {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		services:     services,
		validator:    validator,
		queryDecoder: decoder,
		bgTasks:      bgTasks,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
