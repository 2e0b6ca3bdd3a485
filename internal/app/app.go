// Package app assembles the client: configuration, logger, REST client,
// domain services, the language preference and the view router.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/dashboard"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/settings"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/redisstore"
	"github.com/ganot/unolims/internal/remote"
	"github.com/ganot/unolims/internal/screen"
	"github.com/ganot/unolims/internal/sqlite"
	"go.uber.org/zap"
)

// App holds everything a front end needs.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Client   *remote.Client
	Services screen.Services
	Settings *settings.Service
	Router   *screen.Router

	closers []func() error
}

// New wires the application from cfg. Close releases the preference store.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	prefs, closePrefs, err := OpenPreferences(ctx, cfg.Prefs)
	if err != nil {
		return nil, err
	}
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Client:   remote.New(cfg.API, logger),
		Settings: settings.NewService(prefs, logger),
		closers:  []func() error{closePrefs},
	}
	a.Services = NewServices(a.Client, cfg.API.FanOutLimit, logger)

	cat, err := a.Settings.Catalog(ctx)
	if err != nil {
		logger.Warn("language preference unavailable, using default", zap.Error(err))
		cat = i18n.MustLookup(i18n.Default)
	}
	a.Router = screen.NewRouter(a.Services, cat, logger, nil)
	return a, nil
}

// NewServices builds the domain services over one REST client.
// fanOut bounds concurrent per-item reads; 0 means unbounded.
func NewServices(client *remote.Client, fanOut int, logger *zap.Logger) screen.Services {
	items := item.NewService(remote.NewItemRepository(client), logger)
	return screen.Services{
		Requesters: requester.NewService(remote.NewRequesterRepository(client), logger),
		Requests:   request.NewService(remote.NewRequestRepository(client), logger),
		Items:      items,
		Assays:     assay.NewService(remote.NewAssayRepository(client), items, fanOut, logger),
		Batches:    batch.NewService(remote.NewBatchRepository(client), logger),
		Analyses:   analysis.NewService(remote.NewAnalysisRepository(client), logger),
		Stocks:     stock.NewService(remote.NewStockRepository(client), logger),
		Reagents:   reagent.NewService(remote.NewReagentRepository(client), logger),
		Dashboard:  dashboard.NewService(remote.NewDashboardRepository(client), logger),
		Accounts:   account.NewService(remote.NewAccountRepository(client), client, logger),
	}
}

// OpenPreferences opens the configured preference backend.
func OpenPreferences(ctx context.Context, cfg config.PrefsConfig) (settings.PreferenceRepository, func() error, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := redisstore.NewClient(cfg)
		if err := redisstore.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return redisstore.NewPreferenceRepository(client, cfg.KeyPrefix), client.Close, nil
	case config.BackendSQLite, "":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("preparing preference path: %w", err)
		}
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewPreferenceRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown prefs backend %q", cfg.Backend)
	}
}

// SetLanguage stores the language and switches the router to it.
func (a *App) SetLanguage(ctx context.Context, tag string) (i18n.Language, error) {
	lang, err := a.Settings.SetLanguage(ctx, tag)
	if err != nil {
		return "", err
	}
	a.Router.SetCatalog(i18n.MustLookup(lang))
	return lang, nil
}

// ToggleLanguage switches between the two languages.
func (a *App) ToggleLanguage(ctx context.Context) (i18n.Language, error) {
	lang, err := a.Settings.Toggle(ctx)
	if err != nil {
		return "", err
	}
	a.Router.SetCatalog(i18n.MustLookup(lang))
	return lang, nil
}

// Close releases the preference store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
