package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/config"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/notify"
	"github.com/sandeepkv93/flowo/internal/scheduler"
	"github.com/sandeepkv93/flowo/internal/session"
	"github.com/sandeepkv93/flowo/internal/storage"
)

const localUID = "local-owner"

type services struct {
	app       *app.App
	bridge    *session.Bridge
	engine    *scheduler.Engine
	reminders *notify.Reminders
	platform  notify.Platform
	closers   []func() error
}

// Close releases everything in reverse order of construction.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func buildServices(ctx context.Context, cfg config.RuntimeConfig, logger *log.Logger) (*services, error) {
	s := &services{}

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return nil, err
	}
	if closeRepo != nil {
		s.closers = append(s.closers, closeRepo)
	}

	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.bridge = session.NewBridge(provider, cfg.SessionBuffer)
	s.closers = append(s.closers, func() error {
		s.bridge.Close()
		return nil
	})

	s.engine = scheduler.NewEngine(cfg.SchedulerBuffer)
	s.engine.Start()
	s.closers = append(s.closers, func() error {
		s.engine.Stop()
		return nil
	})

	s.platform = newPlatform(cfg)
	s.reminders = notify.NewReminders(s.engine, s.platform, logger)
	s.app = app.New(app.Deps{
		Session:   provider,
		Reminders: s.reminders,
		Email:     notify.NewLogEmailSender(logger),
		Repo:      repo,
		Logger:    logger,
	})
	if err := loadApp(ctx, s.app, cfg); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func loadApp(ctx context.Context, a *app.App, cfg config.RuntimeConfig) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	if cfg.SeedDemoData {
		if err := a.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}

// openRepository returns a nil repository when no database path is set.
func openRepository(cfg config.RuntimeConfig) (storage.Repository, func() error, error) {
	if cfg.DatabasePath == "" {
		return nil, nil, nil
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return repo, repo.Close, nil
}

func newProvider(ctx context.Context, cfg config.RuntimeConfig, logger *log.Logger) (session.Provider, error) {
	switch cfg.AuthBackend {
	case config.AuthFirebase:
		return session.NewFirebaseProvider(ctx, cfg.FirebaseCredentialsFile, session.FileTokenSource(cfg.FirebaseTokenFile), cfg.RecentLoginWindow, logger)
	default:
		return session.NewMemoryProvider(localUser(cfg), session.WithRecentLoginWindow(cfg.RecentLoginWindow)), nil
	}
}

func localUser(cfg config.RuntimeConfig) model.User {
	return model.User{
		UID:         localUID,
		DisplayName: model.Ref(cfg.LocalUserName),
		Email:       model.Ref(cfg.LocalUserEmail),
	}
}

// newPlatform falls back to in-app delivery when desktop notifications are
// off, so reminders still reach the status bar.
func newPlatform(cfg config.RuntimeConfig) notify.Platform {
	if cfg.DesktopNotifications {
		return notify.NewDesktopPlatform(true)
	}
	return notify.NewMemoryPlatform(notify.PermissionGranted, notify.PermissionGranted)
}
