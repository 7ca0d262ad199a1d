package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"showtimes/proj/internal/api/tasks"
	"showtimes/proj/internal/config"
	"showtimes/proj/internal/lib/logger"
	"showtimes/proj/internal/lib/validator"
	"showtimes/proj/internal/services"
	"showtimes/proj/internal/storage"
	"showtimes/proj/internal/storage/postgres"
	"showtimes/proj/internal/storage/redis"
	"showtimes/proj/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := openStorage(ctx, cfg.Storage)
	cancel()
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	v := validator.New()
	bgTasks := tasks.New(log, cfg.BgTasks.Workers, cfg.BgTasks.QueueSize)
	bgTasks.Run()

	svc := services.New(log, cfg, store, v)
	if err := svc.WarmUp(bgTasks); err != nil {
		log.Warn("token warm-up not scheduled", "errMsg", err.Error())
	}

	app := NewApplication(cfg, log, svc, v, bgTasks)
	if err := app.serve(); err != nil {
		app.log.Error("server stopped", "reason", err.Error())
		store.Close()
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg config.Storage) (storage.KeyValue, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		store, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.Postgres.Dsn, cfg.Postgres.MaxConns, cfg.Postgres.MaxConnIdleTime)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
