package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	local      = "local"
	staging    = "staging"
	production = "production"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	AppEnv        string `env:"APP_ENV" envDefault:"local" validate:"required,lowercase,oneof=local staging production"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	GinMode       string `env:"GIN_MODE" validate:"omitempty,oneof=debug release test"`
	ContentFile   string `env:"CONTENT_FILE"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"./static" validate:"required"`
	ImagesDir     string `env:"IMAGES_DIR" envDefault:"./images" validate:"required"`
	TrackVisits   bool   `env:"TRACK_VISITS" envDefault:"true"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"./data/visits.db"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin" validate:"required"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == production
}

func (c Config) IsLocal() bool {
	return c.AppEnv == local
}

// RouterMode is the gin mode to run in. An explicit GIN_MODE wins; otherwise
// production runs in release mode and everything else in debug mode.
func (c Config) RouterMode() string {
	if c.GinMode != "" {
		return c.GinMode
	}
	if c.IsProduction() {
		return "release"
	}
	return "debug"
}

// VisitsEnabled reports whether page views are recorded at all.
func (c Config) VisitsEnabled() bool {
	return c.TrackVisits && strings.TrimSpace(c.DatabasePath) != ""
}

// AdminEnabled reports whether the admin area is mounted.
func (c Config) AdminEnabled() bool {
	return c.VisitsEnabled() && c.AdminPassword != ""
}

// Load reads the optional dotenv files, then the process environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return Parse(env.Options{})
}

// Parse builds a Config from the environment described by opts.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
