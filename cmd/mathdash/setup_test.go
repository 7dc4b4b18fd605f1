package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/mathdash/internal/config"
	"github.com/appengine-ltd/mathdash/internal/store"
)

func testOptions(t *testing.T, argv ...string) options {
	t.Helper()
	o, err := parseFlags(flag.NewFlagSet("mathdash", flag.ContinueOnError), argv)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return o
}

func TestFlagsOverrideConfigAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("store: sqlite\nquestions_per_round: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := map[string]string{"MATHDASH_QUESTIONS": "8", "MATHDASH_LOG_LEVEL": "debug"}
	o := testOptions(t, "--config", cfgPath, "--store", "MEMORY", "--bases", "3,4", "export", "out.xlsx")

	cfg, err := resolveConfig(o, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Store != store.KindMemory {
		t.Fatalf("flag should win over file, got %q", cfg.Store)
	}
	if cfg.QuestionsPerRound != 8 || cfg.LogLevel != "debug" {
		t.Fatalf("env should win over file: %+v", cfg)
	}
	if len(cfg.BaseNumbers) != 2 || cfg.BaseNumbers[0] != 3 {
		t.Fatalf("unexpected bases %v", cfg.BaseNumbers)
	}
	if len(o.args) != 2 || o.args[0] != "export" {
		t.Fatalf("positional args lost: %v", o.args)
	}
}

func TestResolveConfigRejectsBadBase(t *testing.T) {
	o := testOptions(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--bases", "13")
	if _, err := resolveConfig(o, func(string) string { return "" }); err == nil {
		t.Fatalf("expected base 13 to be rejected")
	}
}

func testRuntime(t *testing.T) *runtime {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Store = store.KindMemory
	cfg.Seed = 9
	r, err := bootstrap(cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestBootstrapWritesLog(t *testing.T) {
	r := testRuntime(t)
	data, err := os.ReadFile(filepath.Join(r.dataDir, "mathdash.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "mathdash started") {
		t.Fatalf("expected startup line, got %q", data)
	}
}

func TestExportSubcommand(t *testing.T) {
	r := testRuntime(t)
	path := filepath.Join(r.dataDir, "progress.xlsx")
	var out bytes.Buffer
	handled, err := runSubcommand(r, []string{"export", path}, &out)
	if !handled || err != nil {
		t.Fatalf("export: handled=%v err=%v", handled, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook missing: %v", err)
	}
	if handled, err := runSubcommand(r, []string{"export"}, &out); !handled || err == nil {
		t.Fatalf("export without a path should fail")
	}
}

func TestResetStatsKeepsCoins(t *testing.T) {
	r := testRuntime(t)
	r.ctrl.Start()
	if _, err := r.ctrl.SubmitAnswer(0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	coins := r.ctrl.Wallet().Balance()
	var out bytes.Buffer
	if _, err := runSubcommand(r, []string{"reset-stats"}, &out); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(r.ctrl.Ledger().Problems()) != 0 || len(r.ctrl.Ledger().Scores()) != 0 {
		t.Fatalf("expected empty ledger after reset")
	}
	if r.ctrl.Wallet().Balance() != coins {
		t.Fatalf("reset should keep coins")
	}
}

func TestUnknownSubcommand(t *testing.T) {
	r := testRuntime(t)
	handled, err := runSubcommand(r, []string{"dance"}, &bytes.Buffer{})
	if !handled || err == nil {
		t.Fatalf("expected unknown command error")
	}
	if handled, _ := runSubcommand(r, nil, &bytes.Buffer{}); handled {
		t.Fatalf("no args should fall through to the game")
	}
}
