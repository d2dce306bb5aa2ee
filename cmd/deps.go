package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/config"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/store"
)

// deps holds everything a command needs to run the game.
type deps struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	ctrl   *progression.Controller

	closers []io.Closer
}

// logMode selects where logs go when no log file is configured.
type logMode int

const (
	logDiscard logMode = iota // TUI: stdout belongs to the screen
	logStdout
)

// openDeps opens the log output, catalog, journal and controller.
func openDeps(cfg *config.Config, mode logMode) (*deps, error) {
	d := &deps{cfg: cfg}

	logger, closer, err := newLogger(cfg, mode)
	if err != nil {
		return nil, err
	}
	d.logger = logger
	if closer != nil {
		d.closers = append(d.closers, closer)
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dsn := store.MemoryDSN
	if cfg.JournalPath != "" {
		if err := store.EnsureDir(cfg.JournalPath); err != nil {
			d.Close()
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
		dsn = cfg.JournalPath
	}
	st, err := store.Open(dsn)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	opts := progression.Options{
		HintCost:        cfg.HintCost,
		StartingBalance: cfg.StartingBalance,
		AckDelay:        cfg.AckDelay,
		EventRepo:       st.EventRepo(),
		Logger:          logger,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	d.ctrl = progression.New(cat, opts)

	logger.Info("kitchen ready",
		"challenges", cat.Len(),
		"hint_cost", cfg.HintCost,
		"starting_coins", cfg.StartingBalance,
		"journal", cfg.JournalPath,
	)
	return d, nil
}

// Close stops pending timers and closes the journal and log file.
func (d *deps) Close() error {
	if d.ctrl != nil {
		d.ctrl.Close()
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	return errors.Join(errs...)
}

func newLogger(cfg *config.Config, mode logMode) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile != "" {
		if err := store.EnsureDir(cfg.LogFile); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, hopts)), f, nil
	}

	if mode == logStdout {
		return slog.New(slog.NewJSONHandler(os.Stdout, hopts)), nil, nil
	}
	return slog.New(slog.DiscardHandler), nil, nil
}
