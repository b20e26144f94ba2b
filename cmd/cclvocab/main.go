package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/cclvocab/internal/config"
	"github.com/jask/cclvocab/internal/database"
	"github.com/jask/cclvocab/internal/logging"
	"github.com/jask/cclvocab/internal/storage"
	"github.com/jask/cclvocab/internal/tui"
	"github.com/jask/cclvocab/internal/vocab"
)

func main() {
	source := flag.String("vocab", "", "word list URL or path (overrides vocab.source)")
	category := flag.String("category", "", "start in this category")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var start vocab.Category
	if *category != "" {
		if start, err = vocab.ParseCategory(*category); err != nil {
			log.Fatalf("category: %v", err)
		}
	}

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Backend:  cfg.Storage.Backend,
		DBPath:   cfg.Database.Path,
		FilePath: cfg.Storage.FilePath,
	})
	if err != nil {
		logger.Warn("progress storage unavailable, keeping progress in memory", zap.Error(err))
		fmt.Fprintf(os.Stderr, "warn: %v; progress will not be saved\n", err)
		store, closeStore = storage.NewMemory(), func() error { return nil }
	} else if cfg.Storage.Backend == storage.BackendSQLite {
		if v, dirty, err := database.SchemaVersion(cfg.Database.Path); err != nil {
			logger.Warn("read schema version", zap.Error(err))
		} else {
			logger.Info("database ready", zap.String("path", cfg.Database.Path), zap.Uint("schema_version", v), zap.Bool("dirty", dirty))
		}
	}
	defer func() { _ = closeStore() }()

	// The flag applies to this run only; cfg is what the UI saves back.
	vocabSource := cfg.Vocab.Source
	if *source != "" {
		vocabSource = *source
	}

	logger.Info("starting",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("vocab", vocabSource),
		zap.String("language", cfg.UI.Language),
	)

	app := tui.New(ctx, cfg, tui.Deps{
		Loader:     vocab.NewLoader(vocabSource, cfg.Vocab.Timeout, logger.Named("loader")),
		Store:      store,
		Log:        logger,
		SaveConfig: config.Save,
		Start:      start,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
