package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/appengine-ltd/mathdash/internal/config"
	"github.com/appengine-ltd/mathdash/internal/export"
	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/store"
)

// version, commit, date are injected at build time via -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	configPath  string
	dataDir     string
	store       string
	questions   int
	seed        int64
	bases       string
	logLevel    string
	assets      string
	tui         bool
	showVersion bool
	args        []string
}

func parseFlags(fs *flag.FlagSet, argv []string) (options, error) {
	var o options
	fs.StringVar(&o.configPath, "config", "", "path to config.yaml")
	fs.StringVar(&o.dataDir, "data-dir", "", "directory for saved progress and logs")
	fs.StringVar(&o.store, "store", "", "storage backend: file, sqlite or memory")
	fs.IntVar(&o.questions, "questions", 0, "questions per round")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 uses the clock)")
	fs.StringVar(&o.bases, "bases", "", "comma separated base numbers, e.g. 6,7,8")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&o.assets, "assets", "assets", "directory holding fonts/ and ui/ for the window")
	fs.BoolVar(&o.tui, "tui", false, "play in the terminal instead of a window")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(argv); err != nil {
		return options{}, err
	}
	o.args = fs.Args()
	return o, nil
}

// resolveConfig layers config.yaml, .env, MATHDASH_* and flags, in that order.
func resolveConfig(o options, getenv func(string) string) (config.Config, error) {
	path := o.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	if o.questions != 0 {
		cfg.QuestionsPerRound = o.questions
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.bases != "" {
		bases, err := config.ParseBaseNumbers(o.bases)
		if err != nil {
			return config.Config{}, err
		}
		cfg.BaseNumbers = bases
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

type runtime struct {
	cfg     config.Config
	dataDir string
	logger  *slog.Logger
	kv      store.Backend
	ctrl    *game.SessionController
	closers []io.Closer
}

func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i].Close())
	}
	return errors.Join(errs...)
}

// bootstrap opens the log, the store and every game component.
func bootstrap(cfg config.Config) (*runtime, error) {
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	r := &runtime{cfg: cfg, dataDir: dataDir}

	logFile, err := os.OpenFile(filepath.Join(dataDir, "mathdash.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	r.closers = append(r.closers, logFile)
	r.logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	kv, err := store.Open(cfg.Store, dataDir)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.kv = kv
	r.closers = append(r.closers, kv)

	engine, err := game.NewQuestionEngine(game.NewRNG(cfg.Seed), cfg.BaseNumbers)
	if err != nil {
		r.Close()
		return nil, err
	}
	catalog, err := game.NewCatalog(kv, game.BuiltinItems(), r.logger)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.ctrl, err = game.NewSessionController(game.ControllerConfig{
		Engine:            engine,
		Ledger:            game.NewStatisticsLedger(kv, r.logger),
		Wallet:            game.NewWallet(kv, r.logger),
		Catalog:           catalog,
		Features:          game.NewFeatureRegistry(kv, r.logger),
		QuestionsPerRound: cfg.QuestionsPerRound,
		Logger:            r.logger,
	})
	if err != nil {
		r.Close()
		return nil, err
	}
	r.logger.Info("mathdash started",
		"version", version,
		"store", cfg.Store,
		"data_dir", dataDir,
		"questions_per_round", cfg.QuestionsPerRound)
	return r, nil
}

// runSubcommand handles the non-interactive commands. It reports false when
// args name no subcommand.
func runSubcommand(r *runtime, args []string, out io.Writer) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "export":
		if len(args) != 2 {
			return true, errors.New("usage: mathdash export <file.xlsx>")
		}
		if err := export.Write(args[1], export.SnapshotFrom(r.ctrl, time.Now())); err != nil {
			return true, err
		}
		r.logger.Info("progress exported", "path", args[1])
		fmt.Fprintf(out, "Progress written to %s\n", args[1])
		return true, nil
	case "reset-stats":
		if err := r.ctrl.ClearStatistics(); err != nil {
			return true, err
		}
		r.logger.Info("statistics cleared")
		fmt.Fprintln(out, "Statistics cleared. Coins and collection were kept.")
		return true, nil
	default:
		return true, fmt.Errorf("unknown command %q (want export or reset-stats)", args[0])
	}
}

// prepare runs everything the front-ends share. A nil runtime with a nil error
// means there is nothing left to do.
func prepare(argv []string) (*runtime, options, error) {
	o, err := parseFlags(flag.CommandLine, argv)
	if err != nil {
		return nil, o, err
	}
	if o.showVersion {
		fmt.Printf("MathDash %s (%s) %s\n", version, commit, date)
		return nil, o, nil
	}
	cfg, err := resolveConfig(o, os.Getenv)
	if err != nil {
		return nil, o, err
	}
	r, err := bootstrap(cfg)
	if err != nil {
		return nil, o, err
	}
	handled, err := runSubcommand(r, o.args, os.Stdout)
	if handled || err != nil {
		return nil, o, errors.Join(err, r.Close())
	}
	return r, o, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
