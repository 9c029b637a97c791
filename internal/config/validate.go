package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// server
	if cfg.Server.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.Server.LogLevel); err != nil {
			errs = append(errs, fmt.Sprintf("server.log_level %q is not a log level", cfg.Server.LogLevel))
		}
	}
	if cfg.Server.RequestTimeout != "" {
		if d, err := time.ParseDuration(cfg.Server.RequestTimeout); err != nil || d < 0 {
			errs = append(errs, "server.request_timeout must be a non-negative duration like 15s")
		}
	}
	for i, o := range cfg.Server.CORSOrigins {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, fmt.Sprintf("server.cors_origins[%d] must not be empty", i))
		}
	}
	if rl := cfg.Server.RateLimit; rl != nil {
		if rl.RPS != nil && *rl.RPS < 0 {
			errs = append(errs, "server.rate_limit.rps must be >= 0 (0 disables limiting)")
		}
		if rl.Burst != nil && *rl.Burst < 1 {
			errs = append(errs, "server.rate_limit.burst must be >= 1")
		}
	}

	// reconstruct
	if _, err := bowling.ParseConfidence(cfg.Reconstruct.MinConfidence); err != nil {
		errs = append(errs, "reconstruct.min_confidence must be one of: none, low, medium, high")
	}

	// simulate
	if cfg.Simulate.Trials != nil && *cfg.Simulate.Trials <= 0 {
		errs = append(errs, "simulate.trials must be >= 1")
	}
	if p := cfg.Simulate.StrikeProb; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, "simulate.strike_prob must be in [0,1]")
	}
	if p := cfg.Simulate.SpareProb; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, "simulate.spare_prob must be in [0,1]")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
