// nutricare — CLI клиента NutriCare: вход, профиль, питание, медицинские
// отчёты, маркетплейс и локальный gateway для SPA.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pribylovaa/nutricare-client/internal/client"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Заполняются через -ldflags "-X main.version=...".
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run выполняет CLI и возвращает код выхода.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		// Подсказку про login уже напечатал OnSessionExpired.
		if !errors.Is(err, client.ErrSessionExpired) {
			fmt.Fprintf(stderr, "Error: %s\n", describe(err))
		}
		return 1
	}

	return 0
}

// describe — короткое сообщение для терминала: у ошибок бэкенда
// показываем detail, а не сырое тело.
func describe(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("backend returned %d: %s", httpErr.Status, httpErr.Detail())
	}

	if client.IsNetwork(err) {
		return fmt.Sprintf("backend is unreachable: %v", err)
	}

	return err.Error()
}

// setupLogger настраивает slog по окружению. level, если задан,
// перекрывает уровень окружения.
func setupLogger(env string, w io.Writer, level string) *slog.Logger {
	var (
		lvl  slog.Level
		json bool
	)

	switch env {
	case envLocal:
		lvl = slog.LevelDebug
	case envDev:
		lvl, json = slog.LevelDebug, true
	case envProd:
		lvl, json = slog.LevelInfo, true
	default:
		lvl = slog.LevelInfo
	}

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
