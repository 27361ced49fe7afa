// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the openjobseu service.
type Config struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	TickIntervalHours int      // how often the ingestion cron fires
	GreenhouseBoards  []string // employer board tokens, may be empty
	WWRFeedURL        string   // override for tests/staging; empty = default
	RemotiveAPIURL    string   // override for tests/staging; empty = default
	RemoteOKAPIURL    string   // override for tests/staging; empty = default
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("TICK_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("TICK_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	var boards []string
	for _, token := range strings.Split(os.Getenv("GREENHOUSE_BOARDS"), ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			boards = append(boards, token)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:              port,
		DatabaseURL:       dbURL,
		RedisURL:          redisURL,
		TickIntervalHours: interval,
		GreenhouseBoards:  boards,
		WWRFeedURL:        os.Getenv("WEWORKREMOTELY_FEED_URL"),
		RemotiveAPIURL:    os.Getenv("REMOTIVE_API_URL"),
		RemoteOKAPIURL:    os.Getenv("REMOTEOK_API_URL"),
	}, nil
}
