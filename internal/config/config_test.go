package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "GRID_ROWS", "WORDS_PER_GAME", "JWT_EXPIRES_DAYS", "NODE_ENV", "WORDS_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "5175" || cfg.DBPath != "./data/app.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GridRows != 20 || cfg.WordsPerGame != 8 || cfg.JWTTTL != 14*24*time.Hour {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.Production || cfg.WordsFile != "" {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GRID_ROWS", "15")
	t.Setenv("GRID_COLS", "not-a-number")
	t.Setenv("JWT_EXPIRES_DAYS", "1")
	t.Setenv("NODE_ENV", "production")

	cfg := Load()
	if cfg.Port != "9000" || cfg.GridRows != 15 || cfg.GridCols != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour || !cfg.Production {
		t.Fatalf("ttl=%v production=%v", cfg.JWTTTL, cfg.Production)
	}
}

func TestValidate(t *testing.T) {
	good := func() Config {
		return Config{GridRows: 20, GridCols: 20, WordsPerGame: 8, JWTTTL: time.Hour, SessionIdle: time.Hour}
	}
	if err := good().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero rows", func(c *Config) { c.GridRows = 0 }, "GRID_ROWS"},
		{"too many cols", func(c *Config) { c.GridCols = MaxGridSide + 1 }, "GRID_COLS"},
		{"no words", func(c *Config) { c.WordsPerGame = 0 }, "WORDS_PER_GAME"},
		{"negative ttl", func(c *Config) { c.JWTTTL = -time.Hour }, "JWT_EXPIRES_DAYS"},
		{"no idle window", func(c *Config) { c.SessionIdle = 0 }, "SESSION_IDLE_MINUTES"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := good()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsBadGridFromEnv(t *testing.T) {
	t.Setenv("GRID_ROWS", "500")
	if err := Load().Validate(); err == nil {
		t.Fatal("GRID_ROWS=500 accepted")
	}
}
