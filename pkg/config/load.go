package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"

	apperrors "github.com/matzehuels/servicescan/pkg/errors"
)

// Discovered config file names, in lookup order.
var configFiles = []string{"config.json", "config.toml"}

// Loader loads a Config. The zero value reads from the working directory
// and the process environment.
type Loader struct {
	// Dir holds the .env file and discovered config files. Defaults to ".".
	Dir string
	// Path is an explicit config file. It must exist when set.
	Path string
	// LookupEnv reads the environment. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load reads the configuration from the default sources. path is an
// optional explicit config file.
func Load(path string) (*Config, error) {
	return Loader{Path: path}.Load()
}

// Load applies every source in order.
func (l Loader) Load() (*Config, error) {
	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv, err := readDotenv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	path := l.Path
	if path == "" {
		path = discover(dir)
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func readDotenv(path string) (gotenv.Env, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return gotenv.Env{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return env, nil
}

func discover(dir string) string {
	for _, name := range configFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unsupported config file %s (want .json or .toml)", path)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

// envVars maps environment variables to the settings they override.
var envVars = []struct {
	key   string
	apply func(cfg *Config, v string) error
}{
	{"GITLAB_URL", setString(func(c *Config) *string { return &c.GitLabURL })},
	{"GITLAB_PRIVATE_TOKEN", setString(func(c *Config) *string { return &c.Token })},
	{"GITLAB_GROUP", setString(func(c *Config) *string { return &c.Group })},
	{"MAX_PROJECTS", setInt(func(c *Config) *int { return &c.MaxProjects })},
	{"REQUEST_TIMEOUT", setInt(func(c *Config) *int { return &c.Timeout })},
	{"MAX_RETRIES", setInt(func(c *Config) *int { return &c.MaxRetries })},
	{"OUTPUT_DIR", setString(func(c *Config) *string { return &c.OutputDir })},
	{"IGNORE_FILES", setList(func(c *Config) *[]string { return &c.IgnoreFiles })},
	{"IGNORE_PROJECTS", setList(func(c *Config) *[]string { return &c.IgnoreProjects })},
	{"MAX_WORKERS", setInt(func(c *Config) *int { return &c.MaxWorkers })},
	{"UNIT_TIMEOUT", setInt(func(c *Config) *int { return &c.UnitTimeout })},
	{"GITLAB_REF", setString(func(c *Config) *string { return &c.Ref })},
	{"RATE_LIMIT", setFloat(func(c *Config) *float64 { return &c.RateLimit })},
	{"CACHE_URL", setString(func(c *Config) *string { return &c.CacheURL })},
	{"MONGO_URI", setString(func(c *Config) *string { return &c.Archive })},
	{"ARCHIVE_URL", setString(func(c *Config) *string { return &c.Archive })},
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	for _, ev := range envVars {
		v, ok := env(ev.key)
		if !ok {
			continue
		}
		if err := ev.apply(cfg, v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid %s", ev.key)
		}
	}
	return nil
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = strings.TrimSpace(v)
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setFloat(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

// setList splits a comma-separated value. An empty value yields an empty
// list, which for IGNORE_FILES means nothing is skipped.
func setList(field func(*Config) *[]string) func(*Config, string) error {
	return func(c *Config, v string) error {
		list := []string{}
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		*field(c) = list
		return nil
	}
}
