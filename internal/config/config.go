// internal/config/config.go
//
// Process configuration.
// Sources, in order of precedence:
//  1. Real environment variables.
//  2. A .env file in the working directory (godotenv; missing is fine).
//  3. The envDefault values below.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Store backends for game sessions.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config is the server configuration.
type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"APP_ENV"   envDefault:"development"`

	// Storage
	Store         string        `env:"STORE"          envDefault:"sqlite"`
	DBPath        string        `env:"DB_PATH"        envDefault:"./data/wordgrid.db"`
	RedisAddr     string        `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"       envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"168h"`

	// Content
	WordsFile   string `env:"WORDS_FILE"`
	LayoutsFile string `env:"LAYOUTS_FILE"`
	BoardSize   int    `env:"BOARD_SIZE"   envDefault:"7"`
	ScoreTarget int    `env:"SCORE_TARGET" envDefault:"100"`
	Turns       int    `env:"TURNS"        envDefault:"15"`

	// Daily challenge
	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	// Auth + HTTP
	JWTSecret      string        `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int           `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string        `env:"COOKIE_NAME"      envDefault:"wordgrid_token"`
	AnonCookieName string        `env:"ANON_COOKIE_NAME" envDefault:"wordgrid_anon"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("STORE must be memory, sqlite or redis, got %q", c.Store)
	}
	if c.BoardSize < 3 || c.BoardSize%2 == 0 {
		return fmt.Errorf("BOARD_SIZE must be odd and >= 3, got %d", c.BoardSize)
	}
	if c.Production() && c.JWTSecret == "dev_secret_change_me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Production reports whether cookies must be Secure/SameSite=None.
func (c Config) Production() bool { return c.Env == "production" }

// Level returns the zerolog level for LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
