// Package config loads MathDash settings from config.yaml, an optional .env
// file and MATHDASH_* environment variables, in that order of precedence
// (later wins). Command-line flags are applied on top by cmd/mathdash.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/store"
)

const (
	appDirName     = "MathDash"
	configFileName = "config.yaml"
	envPrefix      = "MATHDASH_"
)

type Config struct {
	DataDir           string `yaml:"data_dir,omitempty"`
	Store             string `yaml:"store"`
	QuestionsPerRound int    `yaml:"questions_per_round"`
	BaseNumbers       []int  `yaml:"base_numbers,flow"`
	Seed              int64  `yaml:"seed,omitempty"`
	LogLevel          string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Store:             store.KindFile,
		QuestionsPerRound: game.DefaultQuestionCount,
		BaseNumbers:       append([]int(nil), game.DefaultBaseNumbers...),
		LogLevel:          "info",
	}
}

func appDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	if base == "" {
		return "", errors.New("user config dir not found")
	}
	return filepath.Join(base, appDirName), nil
}

// Path is the default location of config.yaml.
func Path() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultDataDir is where state and logs live unless data_dir says otherwise.
func DefaultDataDir() (string, error) {
	return appDir()
}

// Load reads path. A missing file yields defaults; unset fields in a present
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadEnvFile exports the variables in a .env file without overriding
// anything already set in the process environment. A missing file is fine.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays MATHDASH_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(envPrefix + "DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getenv(envPrefix + "STORE"); v != "" {
		c.Store = v
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(envPrefix + "QUESTIONS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sQUESTIONS: %w", envPrefix, err)
		}
		c.QuestionsPerRound = n
	}
	if v := getenv(envPrefix + "SEED"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = n
	}
	if v := getenv(envPrefix + "BASES"); v != "" {
		bases, err := ParseBaseNumbers(v)
		if err != nil {
			return fmt.Errorf("%sBASES: %w", envPrefix, err)
		}
		c.BaseNumbers = bases
	}
	c.normalize()
	return nil
}

// ParseBaseNumbers reads a comma separated list such as "7,8,9".
func ParseBaseNumbers(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("base number %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, errors.New("no base numbers given")
	}
	return out, nil
}

// Normalize canonicalises values assigned directly, such as from flags.
func (c *Config) Normalize() { c.normalize() }

func (c *Config) normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Store == "" {
		c.Store = store.KindFile
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.BaseNumbers) == 0 {
		c.BaseNumbers = append([]int(nil), game.DefaultBaseNumbers...)
	}
}

func (c Config) Validate() error {
	switch c.Store {
	case store.KindFile, store.KindSQLite, store.KindMemory:
	default:
		return fmt.Errorf("store must be file, sqlite or memory: %q", c.Store)
	}
	if c.QuestionsPerRound < 1 {
		return fmt.Errorf("questions_per_round must be at least 1: %d", c.QuestionsPerRound)
	}
	if len(c.BaseNumbers) == 0 {
		return errors.New("base_numbers must not be empty")
	}
	for _, b := range c.BaseNumbers {
		if b < 1 || b > game.MaxMultiplier {
			return fmt.Errorf("base number %d outside 1..%d", b, game.MaxMultiplier)
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ResolveDataDir returns DataDir, or the default data dir when unset.
func (c Config) ResolveDataDir() (string, error) {
	if strings.TrimSpace(c.DataDir) != "" {
		return c.DataDir, nil
	}
	return DefaultDataDir()
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn or error: %q", s)
}

func (c Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// Save writes cfg to path atomically via a temp file in the same directory.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	cleanup = false
	return nil
}
