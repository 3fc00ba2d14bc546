package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/client"
	"github.com/pribylovaa/nutricare-client/internal/config"
	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
	"github.com/pribylovaa/nutricare-client/internal/session"
)

// app — зависимости одного запуска CLI. Собираются в boot перед
// выполнением подкоманды.
type app struct {
	configPath string
	output     string
	logLevel   string

	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	log    *slog.Logger
	reg    *prometheus.Registry
	sess   *session.Session
	client *client.Client
	api    *api.API
	out    *printer

	closers []func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, output: formatJSON}
}

// boot возвращает контекст с логгером запуска.
func (a *app) boot(ctx context.Context) (context.Context, error) {
	const op = "nutricare/boot"

	out, err := newPrinter(a.stdout, a.output)
	if err != nil {
		return ctx, err
	}
	a.out = out

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return ctx, fmt.Errorf("%s: %w", op, err)
	}
	a.cfg = cfg

	// stdout занят выводом команд, логи уходят в stderr.
	a.log = setupLogger(cfg.Env, a.stderr, a.logLevel)
	slog.SetDefault(a.log)
	ctx = log.Into(ctx, a.log)

	store, err := a.newStore(ctx)
	if err != nil {
		return ctx, fmt.Errorf("%s: %w", op, err)
	}

	a.sess = session.New(store)
	if err := a.sess.Restore(ctx); err != nil {
		return ctx, fmt.Errorf("%s: %w", op, err)
	}

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.client, err = client.New(client.Options{
		BaseURL:     cfg.API.BaseURL,
		RefreshPath: cfg.API.RefreshPath,
		UserAgent:   cfg.API.UserAgent + "/" + version,
		Session:     a.sess,
		Logger:      a.log,
		Timeout:     cfg.Timeouts.Request,
		Metrics:     client.NewMetrics(a.reg),
		OnSessionExpired: func(context.Context, error) {
			fmt.Fprintln(a.stderr, "session expired, run `nutricare login`")
		},
	})
	if err != nil {
		return ctx, fmt.Errorf("%s: %w", op, err)
	}

	a.api = api.New(a.client)
	a.log.Debug("cli_ready",
		slog.String("env", cfg.Env),
		slog.String("api", a.client.BaseURL()),
		slog.String("session_backend", cfg.Session.Backend),
	)

	return ctx, nil
}

// newStore выбирает хранилище сессии по конфигурации.
func (a *app) newStore(ctx context.Context) (session.Store, error) {
	switch a.cfg.Session.Backend {
	case config.SessionMemory:
		return session.NewMemoryStore(), nil
	case config.SessionRedis:
		rs, err := session.NewRedisStore(ctx, a.cfg.Session.RedisURL, a.cfg.Session.RedisPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs.Close)
		return rs, nil
	default:
		path, err := a.cfg.SessionPath()
		if err != nil {
			return nil, err
		}
		fs := session.NewFileStore(path, a.cfg.Session.Secret)
		log.From(ctx).Debug("session_file", slog.String("path", fs.Path()), slog.Bool("encrypted", a.cfg.Session.Secret != ""))
		return fs, nil
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil && a.log != nil {
			a.log.Warn("close_failed", slog.String("err", err.Error()))
		}
	}
	a.closers = nil
}
