// Package config resolves class settings and server options from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alyansheikhh/reportcard/internal/grading"
	"github.com/alyansheikhh/reportcard/internal/report"
)

// DefaultEnvFile is loaded when no --env-file is given. A missing file is not
// an error.
const DefaultEnvFile = ".env"

// Environment variable names.
const (
	EnvPassing     = "REPORTCARD_PASSING"
	EnvExcellence  = "REPORTCARD_EXCELLENCE"
	EnvClass       = "REPORTCARD_CLASS"
	EnvScheme      = "REPORTCARD_SCHEME"
	EnvHTTPAddr    = "REPORTCARD_HTTP_ADDR"
	EnvCORSOrigins = "REPORTCARD_CORS_ORIGINS"
)

// Config holds everything the CLI and the HTTP server need.
type Config struct {
	Class report.ClassSettings

	// HTTPAddr is the listen address for `reportcard serve`. Default: ":8080".
	HTTPAddr string

	// CORSOrigins lists the origins allowed by the API. Default: local dev
	// servers.
	CORSOrigins []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Class:       report.DefaultClassSettings(),
		HTTPAddr:    ":8080",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. An empty path means DefaultEnvFile,
// and a missing default file is ignored.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays REPORTCARD_* variables on top of DefaultConfig.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Class.PassingPercentage, err = envInt(EnvPassing, cfg.Class.PassingPercentage); err != nil {
		return cfg, err
	}
	if cfg.Class.ExcellenceThreshold, err = envInt(EnvExcellence, cfg.Class.ExcellenceThreshold); err != nil {
		return cfg, err
	}
	cfg.Class.ClassName = envOr(EnvClass, cfg.Class.ClassName)
	if cfg.Class.Scheme, err = grading.ParseScheme(os.Getenv(EnvScheme)); err != nil {
		return cfg, fmt.Errorf("%s: %w", EnvScheme, err)
	}
	cfg.HTTPAddr = envOr(EnvHTTPAddr, cfg.HTTPAddr)
	cfg.CORSOrigins = csvOr(EnvCORSOrigins, cfg.CORSOrigins)

	return cfg, cfg.Validate()
}

// Validate checks the class settings and server options.
func (c Config) Validate() error {
	if err := c.Class.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http address must not be empty")
	}
	return nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not an integer", k, v)
	}
	return n, nil
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
