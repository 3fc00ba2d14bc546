package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOptions — параметры HTTP-сервера gateway.
type ServerOptions struct {
	Addr            string
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
	// Gatherer — источник метрик для /metrics; nil — prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server — HTTP-сервер gateway: API-роутер, /livez, /healthz, /metrics.
type Server struct {
	opts    ServerOptions
	log     *slog.Logger
	handler http.Handler
	ready   atomic.Bool
}

// NewServer оборачивает API-обработчик служебными эндпоинтами.
func NewServer(apiHandler http.Handler, opts ServerOptions) *Server {
	s := &Server{opts: opts, log: opts.Logger}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.opts.ShutdownTimeout <= 0 {
		s.opts.ShutdownTimeout = 10 * time.Second
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if s.ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/", apiHandler)

	s.handler = mux
	return s
}

// Handler — корневой обработчик (для тестов и встраивания).
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe слушает opts.Addr до отмены ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	const op = "gateway/ListenAndServe"

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("%s: listen %s: %w", op, s.opts.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx, затем выполняет graceful shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const op = "gateway/Serve"

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.log.Info("http_listen_start", slog.String("addr", ln.Addr().String()))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	s.ready.Store(true)
	s.log.Info("gateway_ready")

	var serveErr error
	select {
	case <-ctx.Done():
		s.log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		if serveErr != nil {
			s.log.Error("http_serve_failed", slog.String("err", serveErr.Error()))
		}
	}

	s.ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		s.log.Info("http_stopped")
	}

	if serveErr != nil {
		return fmt.Errorf("%s: %w", op, serveErr)
	}

	return nil
}

// Ready — принимает ли сервер трафик.
func (s *Server) Ready() bool { return s.ready.Load() }
