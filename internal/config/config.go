package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug     bool          `yaml:"debug" env:"DEBUG"`
	Locale    string        `yaml:"locale" env:"LOCALE" env-default:"is"`
	Limiter   Limiter       `yaml:"limiter"`
	AppSecret string        `yaml:"app_secret" env:"APP_SECRET"`
	Server    Server        `yaml:"server"`
	Storage   Storage       `yaml:"storage"`
	Clients   ClientsConfig `yaml:"clients"`
	BgTasks   BgTasks       `yaml:"bg_tasks"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Kvikmyndir struct {
	BaseURL  string        `yaml:"base_url" env:"KVIKMYNDIR_BASE_URL" env-default:"https://api.kvikmyndir.is"`
	Username string        `yaml:"username" env:"KVIKMYNDIR_USERNAME" env-required:"true"`
	Password string        `yaml:"password" env:"KVIKMYNDIR_PASSWORD" env-required:"true"`
	Timeout  time.Duration `yaml:"timeout" env-default:"10s"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"24h"`
}

type ClientsConfig struct {
	Kvikmyndir Kvikmyndir `yaml:"kvikmyndir"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Storage struct {
	Driver   string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	SQLite   SQLite   `yaml:"sqlite"`
	Redis    Redis    `yaml:"redis"`
	Postgres Postgres `yaml:"postgres"`
}

type SQLite struct {
	Path        string        `yaml:"path" env:"SQLITE_PATH" env-default:"showtimes.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env-default:"5s"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
	Prefix   string `yaml:"prefix" env-default:"showtimes:"`
}

type Postgres struct {
	Dsn             string        `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type BgTasks struct {
	Workers   int `yaml:"workers" env-default:"2"`
	QueueSize int `yaml:"queue_size" env-default:"16"`
}

// Load reads the yaml file at configPath with environment overrides. A .env
// file in the working directory, when present, is loaded into the
// environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.Storage.Postgres.Dsn == "" {
			return errors.New("storage.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
