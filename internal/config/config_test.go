package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != "file" || cfg.QuestionsPerRound != 20 || !slices.Equal(cfg.BaseNumbers, []int{7, 8, 9}) || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "store: SQLite\nbase_numbers: [6, 7]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != "sqlite" || !slices.Equal(cfg.BaseNumbers, []int{6, 7}) || cfg.QuestionsPerRound != 20 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Seed = 99
	want.DataDir = "/tmp/mathdash"
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Seed != 99 || got.DataDir != want.DataDir || !slices.Equal(got.BaseNumbers, want.BaseNumbers) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MATHDASH_STORE":     "Memory",
		"MATHDASH_QUESTIONS": "5",
		"MATHDASH_BASES":     "3, 4,12",
		"MATHDASH_SEED":      "-7",
		"MATHDASH_LOG_LEVEL": "DEBUG",
		"MATHDASH_DATA_DIR":  "/data",
	}
	cfg := Default()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Store != "memory" || cfg.QuestionsPerRound != 5 || cfg.Seed != -7 || cfg.DataDir != "/data" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !slices.Equal(cfg.BaseNumbers, []int{3, 4, 12}) {
		t.Fatalf("unexpected bases %v", cfg.BaseNumbers)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	for _, key := range []string{"MATHDASH_QUESTIONS", "MATHDASH_SEED", "MATHDASH_BASES"} {
		cfg := Default()
		err := cfg.ApplyEnv(func(k string) string {
			if k == key {
				return "x,y"
			}
			return ""
		})
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("%s: expected error naming the variable, got %v", key, err)
		}
	}
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MATHDASH_TEST_FROM_FILE=file\nMATHDASH_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MATHDASH_TEST_FROM_FILE", "placeholder")
	os.Unsetenv("MATHDASH_TEST_FROM_FILE")
	t.Setenv("MATHDASH_TEST_PRESET", "shell")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("MATHDASH_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
	if got := os.Getenv("MATHDASH_TEST_PRESET"); got != "shell" {
		t.Fatalf("shell value must win, got %q", got)
	}
	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad store", func(c *Config) { c.Store = "redis" }},
		{"zero questions", func(c *Config) { c.QuestionsPerRound = 0 }},
		{"base too big", func(c *Config) { c.BaseNumbers = []int{13} }},
		{"base zero", func(c *Config) { c.BaseNumbers = []int{0, 7} }},
		{"empty bases", func(c *Config) { c.BaseNumbers = nil }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestResolveDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/explicit"
	got, err := cfg.ResolveDataDir()
	if err != nil || got != "/explicit" {
		t.Fatalf("expected explicit dir, got %q %v", got, err)
	}
}
