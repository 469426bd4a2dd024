// Package config gathers the server settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MaxGridSide bounds grid rows and columns, both in config and per request.
const MaxGridSide = 50

type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	ClientOrigin string
	Production   bool
	DailySalt    string
	GridRows     int
	GridCols     int
	WordsPerGame int
	WordsFile    string
	SessionIdle  time.Duration
}

// Load reads .env (if any) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:       time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "wordsearch_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		GridRows:     envInt("GRID_ROWS", 20),
		GridCols:     envInt("GRID_COLS", 20),
		WordsPerGame: envInt("WORDS_PER_GAME", 8),
		WordsFile:    os.Getenv("WORDS_FILE"),
		SessionIdle:  time.Duration(envInt("SESSION_IDLE_MINUTES", 120)) * time.Minute,
	}
}

// Validate rejects settings that would make every game request fail.
func (c Config) Validate() error {
	var errs []error
	if c.GridRows < 1 || c.GridRows > MaxGridSide {
		errs = append(errs, fmt.Errorf("GRID_ROWS=%d must be in 1..%d", c.GridRows, MaxGridSide))
	}
	if c.GridCols < 1 || c.GridCols > MaxGridSide {
		errs = append(errs, fmt.Errorf("GRID_COLS=%d must be in 1..%d", c.GridCols, MaxGridSide))
	}
	if c.WordsPerGame < 1 {
		errs = append(errs, fmt.Errorf("WORDS_PER_GAME=%d must be positive", c.WordsPerGame))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_DAYS must be positive"))
	}
	if c.SessionIdle < time.Minute {
		errs = append(errs, errors.New("SESSION_IDLE_MINUTES must be at least 1"))
	}
	return errors.Join(errs...)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
