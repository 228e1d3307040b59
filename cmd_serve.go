package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/generator"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/layouts"
	"github.com/robalobadob/wordgrid/internal/metrics"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Starts the game server. Settings come from the environment (and .env when present).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		return serve(cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg config.Config) error {
	zerolog.SetGlobalLevel(cfg.Level())

	dict, err := loadDictionary(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	lib, err := layouts.Load(cfg.LayoutsFile)
	if err != nil {
		return fmt.Errorf("load layouts: %w", err)
	}
	log.Info().Int("words", dict.Len()).Int("layouts", len(lib.List())).Msg("content loaded")

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	sessions, err := openSessions(cfg, db)
	if err != nil {
		return err
	}
	defer sessions.Close()

	srv := httpserver.New(httpserver.Deps{
		Config:    cfg,
		Store:     sessions,
		DB:        db,
		Dict:      dict,
		Generator: generator.New(lib, cfg.ScoreTarget, cfg.Turns),
		Metrics:   metrics.New(),
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Str("env", cfg.Env).Msg("starting wordgrid server")
	return srv.Start(":" + cfg.Port)
}

// openSessions selects the game-session backend named by STORE.
func openSessions(cfg config.Config, db *sql.DB) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreRedis:
		rs := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.WithTTL(cfg.SessionTTL))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return rs, nil
	default:
		return store.NewSQLite(db), nil
	}
}

func loadDictionary(path string) (*words.Dictionary, error) {
	if path != "" {
		return words.ReadFile(path)
	}
	return words.Default()
}
