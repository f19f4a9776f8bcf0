// apps/go-solver/internal/config/config.go
//
// Environment configuration shared by the server and the simulation CLI.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Config holds every tunable of the service.
type Config struct {
	Port     string
	LogLevel zerolog.Level

	AnswersFile string
	AllowedFile string
	Opening     game.Word

	SimWorkers  int
	SimStrategy string
	SimSeed     uint64
	ResultsDB   string // empty: in-memory results

	JWTSecret            string
	OperatorPasswordHash string // bcrypt; empty disables /auth/token
	DailySalt            string
	ClientOrigin         string
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{
		Port:                 Env("PORT", "5175"),
		AnswersFile:          os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:          os.Getenv("WORDS_ALLOWED_FILE"),
		SimStrategy:          Env("SIM_STRATEGY", "entropy"),
		ResultsDB:            os.Getenv("RESULTS_DB"),
		JWTSecret:            Env("JWT_SECRET", "dev_secret_change_me"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		DailySalt:            Env("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:         Env("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	lvl, err := zerolog.ParseLevel(Env("LOG_LEVEL", "info"))
	if err != nil {
		return c, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	if c.Opening, err = game.ParseWord(Env("OPENING_WORD", "SALET")); err != nil {
		return c, fmt.Errorf("OPENING_WORD: %w", err)
	}
	if c.SimWorkers, err = strconv.Atoi(Env("SIM_WORKERS", "0")); err != nil {
		return c, fmt.Errorf("SIM_WORKERS: %w", err)
	}
	if c.SimSeed, err = strconv.ParseUint(Env("SIM_SEED", "42"), 10, 64); err != nil {
		return c, fmt.Errorf("SIM_SEED: %w", err)
	}
	return c, nil
}

// Env returns the variable k, or def when unset or blank.
func Env(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
