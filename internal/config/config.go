package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

const (
	EnvWorkers     = "NIBBLESTEGO_WORKERS"
	EnvLogLevel    = "NIBBLESTEGO_LOG_LEVEL"
	EnvListen      = "NIBBLESTEGO_LISTEN"
	EnvMaxUploadMB = "NIBBLESTEGO_MAX_UPLOAD_MB"
	EnvMaxPixels   = "NIBBLESTEGO_MAX_PIXELS"
)

// MaxUploadMB caps NIBBLESTEGO_MAX_UPLOAD_MB so the byte count fits an int64.
const MaxUploadMB = 1 << 20

// Config holds the settings shared by the CLI and the HTTP service.
type Config struct {
	Workers        int
	LogLevel       string
	Listen         string
	MaxUploadBytes int64
	// MaxPixels caps the width*height an uploaded image may declare.
	MaxPixels int64
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:        runtime.GOMAXPROCS(0),
		LogLevel:       "info",
		Listen:         ":8080",
		MaxUploadBytes: 32 << 20,
		MaxPixels:      50_000_000,
	}
}

// FromEnv returns Default overridden by any NIBBLESTEGO_* variables that are
// set. Unparseable or non-positive numbers fall back to the default.
func FromEnv() Config {
	c := Default()
	c.Workers = EnvIntOr(EnvWorkers, c.Workers)
	c.LogLevel = EnvOr(EnvLogLevel, c.LogLevel)
	c.Listen = EnvOr(EnvListen, c.Listen)
	c.MaxUploadBytes = int64(min(EnvIntOr(EnvMaxUploadMB, int(c.MaxUploadBytes>>20)), MaxUploadMB)) << 20
	c.MaxPixels = int64(EnvIntOr(EnvMaxPixels, int(c.MaxPixels)))
	return c
}

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed positive int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
