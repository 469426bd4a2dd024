package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/auth"
	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/database"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run returns instead of exiting so deferred cleanup (the database) runs
// before main logs the failure.
func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := words.Init(cfg.WordsFile); err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	defer db.Close()
	if err := database.Migrate(db, assets.Migrations); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	srv := httpserver.New(store.NewMemoryStore(), db, httpserver.Config{
		Auth: auth.Config{
			Secret:     []byte(cfg.JWTSecret),
			TTL:        cfg.JWTTTL,
			CookieName: cfg.CookieName,
			Secure:     cfg.Production,
		},
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
		Rows:         cfg.GridRows,
		Cols:         cfg.GridCols,
		WordsPerGame: cfg.WordsPerGame,
		SessionIdle:  cfg.SessionIdle,
	})
	log.Info().Str("port", cfg.Port).Int("words", words.Stats()).Msg("starting wordsearch server")
	return srv.Start(":" + cfg.Port)
}
