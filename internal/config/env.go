package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv overrides file values with environment variables when present.
// Unparseable numbers are ignored.
func ApplyEnv(cfg RawConfig, getenv func(string) string) RawConfig {
	if getenv == nil {
		return cfg
	}
	if v := getenv("BOWLING_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := getenv("BOWLING_REQUEST_TIMEOUT"); v != "" {
		cfg.Server.RequestTimeout = v
	}
	if v := getenv("BOWLING_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := getenv("BOWLING_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimit = rateLimit(cfg.Server.RateLimit)
			cfg.Server.RateLimit.RPS = &f
		}
	}
	if v := getenv("BOWLING_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = rateLimit(cfg.Server.RateLimit)
			cfg.Server.RateLimit.Burst = &n
		}
	}
	return cfg
}

// rateLimit copies rl so env overrides never write through to cached files.
func rateLimit(rl *RateLimitConfig) *RateLimitConfig {
	if rl == nil {
		return &RateLimitConfig{}
	}
	c := *rl
	return &c
}
