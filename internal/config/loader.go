package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for the layered config files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/bowling/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) EnvPath(env string) string {
	return filepath.Join(p.BaseDir, env+".yaml")
}

// Files lists the files a given env reads, in merge order.
func (p Paths) Files(env string) []string {
	files := []string{p.DefaultPath()}
	if env != "" {
		files = append(files, p.EnvPath(env))
	}
	return files
}

// Loader reads YAML configs and merges default → env.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: env, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → env (env file optional).
// It returns the merged RawConfig (without env overrides or normalization).
func (l *Loader) LoadMerged(env string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[env]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if env != "" {
		envCfg, err := readYAML(l.paths.EnvPath(env))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read %s: %w", env, err)
		}
		merged = mergeRaw(merged, envCfg)
	}

	l.mu.Lock()
	l.cache[env] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load merges the files, applies environment overrides, validates and
// normalizes.
func (l *Loader) Load(env string, getenv func(string) string) (Settings, error) {
	raw, err := l.LoadMerged(env)
	if err != nil {
		return Settings{}, err
	}
	raw = ApplyEnv(raw, getenv)
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}
	s := Normalize(raw)
	s.Env = env
	return s, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Slices in 'b' replace those in 'a' if provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// server
	if b.Server.Addr != "" {
		out.Server.Addr = b.Server.Addr
	}
	if b.Server.LogLevel != "" {
		out.Server.LogLevel = b.Server.LogLevel
	}
	if b.Server.RequestTimeout != "" {
		out.Server.RequestTimeout = b.Server.RequestTimeout
	}
	if len(b.Server.CORSOrigins) > 0 {
		out.Server.CORSOrigins = append([]string(nil), b.Server.CORSOrigins...)
	}
	switch {
	case out.Server.RateLimit == nil && b.Server.RateLimit != nil:
		c := *b.Server.RateLimit
		out.Server.RateLimit = &c
	case out.Server.RateLimit != nil && b.Server.RateLimit != nil:
		c := *out.Server.RateLimit
		if b.Server.RateLimit.RPS != nil {
			c.RPS = b.Server.RateLimit.RPS
		}
		if b.Server.RateLimit.Burst != nil {
			c.Burst = b.Server.RateLimit.Burst
		}
		out.Server.RateLimit = &c
	}

	// reconstruct
	if b.Reconstruct.MinConfidence != "" {
		out.Reconstruct.MinConfidence = b.Reconstruct.MinConfidence
	}

	// simulate
	if b.Simulate.Trials != nil {
		out.Simulate.Trials = b.Simulate.Trials
	}
	if b.Simulate.Seed != nil {
		out.Simulate.Seed = b.Simulate.Seed
	}
	if b.Simulate.StrikeProb != nil {
		out.Simulate.StrikeProb = b.Simulate.StrikeProb
	}
	if b.Simulate.SpareProb != nil {
		out.Simulate.SpareProb = b.Simulate.SpareProb
	}

	return out
}
