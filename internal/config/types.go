// types.go
package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/sim"
)

// Raw config loaded from YAML. Pointer and empty fields mean "not set" so
// that layered files only override what they mention.
type RawConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Reconstruct ReconstructConfig `yaml:"reconstruct"`
	Simulate    SimulateConfig    `yaml:"simulate"`
}

type ServerConfig struct {
	Addr           string           `yaml:"addr"`
	LogLevel       string           `yaml:"log_level"`
	RequestTimeout string           `yaml:"request_timeout"` // e.g. "15s"
	CORSOrigins    []string         `yaml:"cors_origins,omitempty"`
	RateLimit      *RateLimitConfig `yaml:"rate_limit,omitempty"`
}

type RateLimitConfig struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type ReconstructConfig struct {
	// Scoresheet entries rebuilt below this confidence get a warning.
	MinConfidence string `yaml:"min_confidence"`
}

type SimulateConfig struct {
	Trials     *int     `yaml:"trials"`
	Seed       *uint64  `yaml:"seed,omitempty"`
	StrikeProb *float64 `yaml:"strike_prob"`
	SpareProb  *float64 `yaml:"spare_prob"`
}

// Settings are the normalized values the server and CLI run with.
type Settings struct {
	Env            string
	Addr           string
	LogLevel       zerolog.Level
	RequestTimeout time.Duration
	CORSOrigins    []string
	RateRPS        float64
	RateBurst      int
	MinConfidence  bowling.Confidence
	Trials         int
	Seed           *uint64 // nil means crypto randomness
	Profile        sim.Profile
}
