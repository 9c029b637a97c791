package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/sim"
)

const (
	DefaultAddr           = ":8080"
	DefaultRequestTimeout = 15 * time.Second
	DefaultRateRPS        = 20
	DefaultRateBurst      = 40
	DefaultTrials         = 10000
)

// Normalize fills defaults into a validated RawConfig.
func Normalize(cfg RawConfig) Settings {
	s := Settings{
		Addr:           DefaultAddr,
		LogLevel:       zerolog.InfoLevel,
		RequestTimeout: DefaultRequestTimeout,
		RateRPS:        DefaultRateRPS,
		RateBurst:      DefaultRateBurst,
		MinConfidence:  bowling.ConfidenceLow,
		Trials:         DefaultTrials,
		Profile:        sim.Profile{StrikeProb: 0.2, SpareProb: 0.4},
	}

	if cfg.Server.Addr != "" {
		s.Addr = cfg.Server.Addr
	}
	if lvl, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil && cfg.Server.LogLevel != "" {
		s.LogLevel = lvl
	}
	if d, err := time.ParseDuration(cfg.Server.RequestTimeout); err == nil {
		s.RequestTimeout = d
	}
	s.CORSOrigins = append([]string(nil), cfg.Server.CORSOrigins...)
	if rl := cfg.Server.RateLimit; rl != nil {
		if rl.RPS != nil {
			s.RateRPS = *rl.RPS
		}
		if rl.Burst != nil {
			s.RateBurst = *rl.Burst
		}
	}

	if c, err := bowling.ParseConfidence(cfg.Reconstruct.MinConfidence); err == nil && cfg.Reconstruct.MinConfidence != "" {
		s.MinConfidence = c
	}

	if cfg.Simulate.Trials != nil {
		s.Trials = *cfg.Simulate.Trials
	}
	if cfg.Simulate.Seed != nil {
		seed := *cfg.Simulate.Seed
		s.Seed = &seed
	}
	if cfg.Simulate.StrikeProb != nil {
		s.Profile.StrikeProb = *cfg.Simulate.StrikeProb
	}
	if cfg.Simulate.SpareProb != nil {
		s.Profile.SpareProb = *cfg.Simulate.SpareProb
	}
	return s
}
