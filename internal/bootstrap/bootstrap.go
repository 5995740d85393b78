package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	referenceinadapter "aidref/internal/modules/reference/adapter/in"
	referenceoutadapter "aidref/internal/modules/reference/adapter/out"
	referenceout "aidref/internal/modules/reference/port/out"
	referenceservice "aidref/internal/modules/reference/service"
	referenceusecase "aidref/internal/modules/reference/usecase"
	"aidref/internal/platform/clock"
	"aidref/internal/platform/config"
	"aidref/internal/platform/logging"
	"aidref/internal/platform/tx"
)

type App struct {
	ReferenceCLI referenceinadapter.CLIHandler
	Logger       *zap.Logger

	closers []func() error
}

// New wires the reference module against the SQLite store at cfg.DBPath.
func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	store, err := referenceoutadapter.NewSQLiteReferenceStore(cfg.DBPath, clock.SystemClock{})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("new reference store: %w", err)
	}
	app := newApp(cfg, logger, store, store, store)
	app.closers = append(app.closers, store.Close)
	return app, nil
}

// NewInMemory wires the reference module against an in-memory store filled
// from seedPath.
func NewInMemory(cfg config.Config, seedPath string) (*App, error) {
	logger, err := logging.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	store := referenceoutadapter.NewMemoryReferenceStore()
	app := newApp(cfg, logger, store, store, store)
	if _, err := app.ReferenceCLI.Seed(context.Background(), seedPath); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("seed in-memory store: %w", err)
	}
	return app, nil
}

type keywordStore interface {
	referenceout.KeywordStore
	referenceout.KeywordWriter
}

type projectReferenceStore interface {
	referenceout.ProjectReferenceStore
	referenceout.ProjectReferenceWriter
}

func newApp(cfg config.Config, logger *zap.Logger, keywords keywordStore, projects projectReferenceStore, units tx.Manager) *App {
	opts := referenceservice.Options{TrimEdgeArticles: cfg.TrimEdgeArticles}
	referenceUC := referenceusecase.NewInteractor(
		referenceservice.NewReferenceService(keywords, projects, logger.Named("reference"), opts),
		referenceservice.NewImportService(keywords, keywords, projects, referenceoutadapter.NewYAMLSeedSource(), units, logger.Named("import")),
	)
	return &App{
		ReferenceCLI: referenceinadapter.NewCLIHandler(referenceUC),
		Logger:       logger,
	}
}

func (a *App) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	_ = a.Logger.Sync()
	return first
}
