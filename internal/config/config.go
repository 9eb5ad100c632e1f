// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.  Required variables are
// enforced by must() and missing values abort startup; optional knobs
// carry defaults.
type Config struct {
	Env       string // application environment (dev/test/prod)
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host
	DBPort    string // database port
	DBName    string // database name
	JWTSecret string // secret used to sign JWTs

	AccessTTLMin   int // access token time-to-live in minutes
	RefreshTTLDays int // refresh token time-to-live in days
	BcryptCost     int // bcrypt cost for password hashing

	// Reservation slot window, 24-hour "HH:MM" bounds stepped by
	// SlotStepMin minutes.  Defaults to the 11:00-21:00 / 30 min
	// dinner-service window.
	SlotStartHour int
	SlotStartMin  int
	SlotEndHour   int
	SlotEndMin    int
	SlotStepMin   int

	// PastDatesUnselectable enables the stricter calendar variant: the
	// day view reports past dates as unselectable instead of merely
	// read-only.  Mutations on past dates are refused either way.
	PastDatesUnselectable bool

	// Login throttle (Redis-backed); zero attempts disables it.
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Load reads configuration from the environment.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		SlotStepMin:           envInt("SLOT_STEP_MIN", 30),
		PastDatesUnselectable: envBool("PAST_DATES_UNSELECTABLE", false),
		LoginMaxAttempts:      envInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:           envDur("LOGIN_WINDOW", time.Minute),
	}
	cfg.SlotStartHour, cfg.SlotStartMin = envClock("SLOT_START", 11, 0)
	cfg.SlotEndHour, cfg.SlotEndMin = envClock("SLOT_END", 21, 0)
	return cfg
}

// must retrieves a required environment variable or aborts.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() with integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// envClock parses an "HH:MM" 24-hour value into hour and minute parts.
func envClock(key string, defHour, defMin int) (int, int) {
	v := os.Getenv(key)
	if v == "" {
		return defHour, defMin
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		log.Fatalf("invalid HH:MM for %s: %q", key, v)
	}
	return t.Hour(), t.Minute()
}
