// Package config loads servicescan settings.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults
//  2. A .env file in the working directory (never overrides the process
//     environment)
//  3. The process environment (GITLAB_URL, GITLAB_PRIVATE_TOKEN, ...)
//  4. A config file: config.json or config.toml, explicit or discovered in
//     the working directory
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/matzehuels/servicescan/pkg/errors"
)

// Validation errors.
var (
	ErrMissingToken   = errors.New("GITLAB_PRIVATE_TOKEN is not set")
	ErrInvalidWorkers = errors.New("max_workers must be at least 1")
	ErrInvalidTimeout = errors.New("timeouts must be positive")
	ErrInvalidRetries = errors.New("max_retries must be at least 1")
)

// Defaults.
const (
	DefaultGitLabURL   = "https://gitlab.com"
	DefaultMaxProjects = 100
	DefaultTimeout     = 30
	DefaultMaxRetries  = 3
	DefaultOutputDir   = "results"
	DefaultMaxWorkers  = 5
	DefaultUnitTimeout = 60
	DefaultRef         = "main"
)

// DefaultIgnoreFiles are the manifest names skipped by default.
var DefaultIgnoreFiles = []string{".gitlab-ci.yml", "docker-compose.yml", "docker-compose.yaml"}

// Config holds every setting of a run. Durations are whole seconds so that
// the file and environment forms stay plain integers.
type Config struct {
	GitLabURL      string   `json:"gitlab_url" toml:"gitlab_url"`
	Token          string   `json:"gitlab_token" toml:"gitlab_token"`
	Group          string   `json:"group_path" toml:"group_path"`
	MaxProjects    int      `json:"max_projects" toml:"max_projects"`
	Timeout        int      `json:"timeout" toml:"timeout"`
	MaxRetries     int      `json:"max_retries" toml:"max_retries"`
	OutputDir      string   `json:"output_dir" toml:"output_dir"`
	IgnoreFiles    []string `json:"ignore_files" toml:"ignore_files"`
	IgnoreProjects []string `json:"ignore_projects" toml:"ignore_projects"`
	MaxWorkers     int      `json:"max_workers" toml:"max_workers"`
	UnitTimeout    int      `json:"unit_timeout" toml:"unit_timeout"`
	// Ref is the branch manifests are read from. Empty means each
	// project's default branch.
	Ref       string  `json:"ref" toml:"ref"`
	RateLimit float64 `json:"rate_limit" toml:"rate_limit"`
	// CacheURL selects the response cache: "" (none), "file" or a
	// redis:// URL.
	CacheURL string `json:"cache_url" toml:"cache_url"`
	// Archive, when set, keeps every run: "file", "file://DIR" or a
	// mongodb:// URI.
	Archive string `json:"archive" toml:"archive"`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		GitLabURL:   DefaultGitLabURL,
		MaxProjects: DefaultMaxProjects,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		OutputDir:   DefaultOutputDir,
		IgnoreFiles: append([]string(nil), DefaultIgnoreFiles...),
		MaxWorkers:  DefaultMaxWorkers,
		UnitTimeout: DefaultUnitTimeout,
		Ref:         DefaultRef,
	}
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// UnitDeadline returns the per-project analysis timeout.
func (c *Config) UnitDeadline() time.Duration {
	return time.Duration(c.UnitTimeout) * time.Second
}

// Validate checks c for settings a run cannot start with.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if err := apperrors.ValidateURL(c.GitLabURL); err != nil {
		return err
	}
	if err := apperrors.ValidateGroupPath(c.Group); err != nil {
		return err
	}
	if c.MaxWorkers < 1 {
		return ErrInvalidWorkers
	}
	if c.Timeout <= 0 || c.UnitTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 1 {
		return ErrInvalidRetries
	}
	if c.MaxProjects < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "max_projects cannot be negative")
	}
	if c.RateLimit < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "rate_limit cannot be negative")
	}
	return nil
}

// Redacted returns a copy of c safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Token != "" {
		out.Token = redact(out.Token)
	}
	return &out
}

func redact(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}

// String summarizes the scope of c.
func (c *Config) String() string {
	group := c.Group
	if group == "" {
		group = "all accessible projects"
	}
	return fmt.Sprintf("%s (%s)", c.GitLabURL, group)
}
