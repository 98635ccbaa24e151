// app.go builds the object graph every command shares: config, logger,
// session store, session manager (hydrated), auth client, and the route
// guard with a terminal navigator.
package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blxck-client/internal/authclient"
	"blxck-client/internal/config"
	"blxck-client/internal/guard"
	"blxck-client/internal/session"
	"blxck-client/internal/store"
)

type app struct {
	cfg    config.AppConfig
	logger *zap.Logger
	sess   *session.Manager
	client *authclient.Client
	guard  *guard.Guard
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(st, logger)
	sess.Hydrate(ctx)

	g := guard.New(terminalNavigator{}, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		sess:   sess,
		client: authclient.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, logger),
		guard:  g,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	// Quiet by default: the CLI talks to the user on stdout, the logger
	// only reports problems on stderr.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func buildStore(cfg config.AppConfig, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		}, logger)
	case "file", "":
		path := cfg.SessionPath
		if path == "" {
			var err error
			path, err = store.DefaultSessionPath()
			if err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(path, logger), nil
	default:
		return nil, fmt.Errorf("unknown session store backend %q", cfg.StoreBackend)
	}
}

// terminalNavigator is the CLI's rendition of a screen change: it tells
// the user where the web client would land them.
type terminalNavigator struct{}

func (terminalNavigator) NavigateTo(route guard.Route) {
	fmt.Printf("opening %s\n", route)
}
