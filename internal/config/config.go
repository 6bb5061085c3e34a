// internal/config/config.go
//
// Environment-driven configuration. main loads .env (godotenv) first, so
// values here come from the process environment or that file. Command-line
// flags override these defaults.
//
// Environment variables:
//   PORT                   HTTP listen port (default 5175)
//   WORDS_DB               SQLite lexicon path
//   WORDS_ANSWERS_FILE     answer list, one word per line
//   WORDS_ALLOWED_FILE     guess list, one word per line
//   SOLVER_UNIQUE_GUESSES  de-duplicate the guess vocabulary (default false)
//   SOLVER_WORKERS         search goroutines per round (default NumCPU)
//   SOLVER_KEEP_TAIL       scan the vocabulary remainder (default false)
//   SOLVER_TIMEOUT         per-round search timeout, e.g. 5s (default none)
//   SOLVER_TOP             ranked guesses shown per round (default 10)
//   SOLVER_MAX_ROUNDS      round cap, 0 = none
//   JWT_SECRET             enables bearer auth on the API when set
//   JWT_EXPIRES_DAYS       token lifetime (default 14)
//   RATE_LIMIT_RPS         per-client requests/second (default 5)
//   RATE_LIMIT_BURST       per-client burst (default 10)
//   DAILY_SALT             salt for the daily answer (default local_dev_salt)

package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Config is the resolved runtime configuration.
type Config struct {
	Port  string
	Words words.Source

	Workers   int
	KeepTail  bool
	Timeout   time.Duration
	Top       int
	MaxRounds int

	JWTSecret      string
	JWTExpiresDays int
	RateLimitRPS   int
	RateLimitBurst int
	DailySalt      string
}

// FromEnv reads the configuration from the environment.
func FromEnv() Config {
	return Config{
		Port: getEnv("PORT", "5175"),
		Words: words.Source{
			DB:            os.Getenv("WORDS_DB"),
			AnswersFile:   os.Getenv("WORDS_ANSWERS_FILE"),
			AllowedFile:   os.Getenv("WORDS_ALLOWED_FILE"),
			UniqueGuesses: envBool("SOLVER_UNIQUE_GUESSES", false),
		},
		Workers:        envInt("SOLVER_WORKERS", runtime.NumCPU()),
		KeepTail:       envBool("SOLVER_KEEP_TAIL", false),
		Timeout:        envDuration("SOLVER_TIMEOUT", 0),
		Top:            envInt("SOLVER_TOP", 10),
		MaxRounds:      envInt("SOLVER_MAX_ROUNDS", 0),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 10),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// SolverOptions maps the configuration onto solver options.
func (c Config) SolverOptions(obs solver.Observer) solver.Options {
	return solver.Options{
		Search: search.Options{
			Workers:  c.Workers,
			KeepTail: c.KeepTail,
			Timeout:  c.Timeout,
		},
		Top:       c.Top,
		MaxRounds: c.MaxRounds,
		Observer:  obs,
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid int, using default")
		return def
	}
	return n
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Bool("default", def).Msg("invalid bool, using default")
		return def
	}
	return b
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
		return def
	}
	return d
}
