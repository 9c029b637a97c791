package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

const defaultYAML = `
server:
  addr: ":8080"
  log_level: info
  request_timeout: 10s
  cors_origins: ["http://localhost:3000"]
  rate_limit:
    rps: 20
    burst: 40
reconstruct:
  min_confidence: low
simulate:
  trials: 500
  strike_prob: 0.2
  spare_prob: 0.4
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadMergedLayersEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	writeFile(t, dir, "prod.yaml", `
server:
  log_level: warn
  rate_limit:
    burst: 5
simulate:
  seed: 7
`)

	l := NewLoader(dir)
	raw, err := l.LoadMerged("prod")
	require.NoError(t, err)
	assert.Equal(t, ":8080", raw.Server.Addr)
	assert.Equal(t, "warn", raw.Server.LogLevel)
	assert.Equal(t, 20.0, *raw.Server.RateLimit.RPS, "unset fields keep the default")
	assert.Equal(t, 5, *raw.Server.RateLimit.Burst)
	assert.Equal(t, uint64(7), *raw.Simulate.Seed)

	def, err := l.LoadMerged("")
	require.NoError(t, err)
	assert.Equal(t, 40, *def.Server.RateLimit.Burst, "merging must not write through to the default")
}

func TestLoadMergedMissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	raw, err := NewLoader(dir).LoadMerged("staging")
	require.NoError(t, err)
	assert.Equal(t, "info", raw.Server.LogLevel)
}

func TestLoadMergedBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "server: [")
	_, err := NewLoader(dir).LoadMerged("")
	assert.ErrorContains(t, err, "read default")
}

func TestLoaderCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	l := NewLoader(dir)
	_, err := l.LoadMerged("")
	require.NoError(t, err)

	writeFile(t, dir, "default.yaml", "server:\n  addr: \":9999\"\n")
	raw, _ := l.LoadMerged("")
	assert.Equal(t, ":8080", raw.Server.Addr, "cached until invalidated")

	l.Invalidate()
	raw, _ = l.LoadMerged("")
	assert.Equal(t, ":9999", raw.Server.Addr)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	env := map[string]string{
		"LOG_LEVEL":            "debug",
		"BOWLING_ADDR":         ":9090",
		"BOWLING_CORS_ORIGINS": "https://a.example, https://b.example",
		"BOWLING_RATE_RPS":     "3.5",
	}
	s, err := NewLoader(dir).Load("", func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Addr)
	assert.Equal(t, zerolog.DebugLevel, s.LogLevel)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CORSOrigins)
	assert.Equal(t, 3.5, s.RateRPS)
	assert.Equal(t, 40, s.RateBurst)
	assert.Equal(t, bowling.ConfidenceLow, s.MinConfidence)
	assert.Equal(t, 500, s.Trials)
	assert.Nil(t, s.Seed)
	assert.Equal(t, 0.2, s.Profile.StrikeProb)
}

func TestLoadSettingsRejectsBadEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	_, err := NewLoader(dir).Load("", func(k string) string {
		if k == "LOG_LEVEL" {
			return "loud"
		}
		return ""
	})
	assert.ErrorContains(t, err, "server.log_level")
}

func TestNormalizeDefaults(t *testing.T) {
	s := Normalize(RawConfig{})
	assert.Equal(t, DefaultAddr, s.Addr)
	assert.Equal(t, zerolog.InfoLevel, s.LogLevel)
	assert.Equal(t, DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, DefaultTrials, s.Trials)
	assert.Empty(t, s.CORSOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "BOWLING_TEST_DOTENV=loaded\n")
	t.Setenv("BOWLING_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("BOWLING_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "loaded", os.Getenv("BOWLING_TEST_DOTENV"))
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
