package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	Addr string

	RedisURL    string
	DatabaseURL string

	SessionTTLSec int

	WeightPreset string
	WeightsDir   string

	MaxBodyBytes int
}

// SessionTTL is SessionTTLSec as a duration.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSec) * time.Second
}

// GamesEnabled reports whether game sessions can be stored.
func (c *AppConfig) GamesEnabled() bool { return c.RedisURL != "" }

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Addr:          ":8080",
		SessionTTLSec: 86400,
		WeightPreset:  "standard",
		MaxBodyBytes:  1 << 20,
	}

	if v := strings.TrimSpace(os.Getenv("CHESSCORE_ADDR")); v != "" {
		cfg.Addr = v
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("CHESS_SESSION_TTL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("CHESS_SESSION_TTL must be a positive number of seconds, got %q", v)
		}
		cfg.SessionTTLSec = n
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_WEIGHT_PRESET")); v != "" {
		cfg.WeightPreset = strings.ToLower(v)
	}
	cfg.WeightsDir = strings.TrimSpace(os.Getenv("CHESS_WEIGHTS_DIR"))
	if v := strings.TrimSpace(os.Getenv("CHESS_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	if cfg.DatabaseURL != "" && cfg.RedisURL == "" {
		return nil, errors.New("DATABASE_URL requires REDIS_URL: results are archived from game sessions")
	}

	return cfg, nil
}
