package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"UXTester/internal/api"
	"UXTester/internal/audit"
	"UXTester/internal/auth"
	"UXTester/internal/config"
	"UXTester/internal/infrastructure/llm"
	"UXTester/internal/infrastructure/probe"
	"UXTester/internal/infrastructure/scheduler"
	"UXTester/internal/infrastructure/storage"
	"UXTester/internal/infrastructure/telegram"
	"UXTester/internal/logging"
	"UXTester/internal/monitor"
	"UXTester/internal/ports"
	"UXTester/internal/registry"
)

const shutdownGrace = 10 * time.Second

// Application wires config to components and owns process lifecycle.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	monitor *monitor.Scheduler
	server  *http.Server
	history *storage.SQLiteHistory
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var narrative ports.NarrativeGenerator
	if cfg.LLM.APIKey != "" {
		narrative = llm.NewChatClient(cfg.LLM)
	}

	engine := audit.NewEngine(narrative, probe.NewHTTPTitleProbe(nil), logging.Component(baseLogger, "audit"))
	fixer := audit.NewFixAdvisor(narrative, logging.Component(baseLogger, "fix"))

	reg := registry.New()

	sinks := monitor.MultiSink{monitor.NewLogSink(logging.Component(baseLogger, "alerts"))}
	tg := cfg.Notifications.Telegram
	if tg.BotToken != "" && tg.ChatID != "" {
		sinks = append(sinks, telegram.NewNotifier(tg.BotToken, tg.ChatID))
	}

	var history *storage.SQLiteHistory
	if cfg.History.Path != "" {
		h, err := storage.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open check history: %w", err)
		}
		history = h
	}

	var historyPort ports.CheckHistory
	if history != nil {
		historyPort = history
	}

	mon := monitor.NewScheduler(monitor.SchedulerDeps{
		Registry: reg,
		Auditor:  engine,
		Alerts:   sinks,
		History:  historyPort,
		Driver:   scheduler.NewIntervalDriver(cfg.Scheduler.Interval),
		Logger:   logging.Component(baseLogger, "monitor"),
	})

	gate := auth.NewPrefixGate(cfg.Auth.KeyPrefix)
	apiServer := api.NewServer(engine, fixer, reg, gate, logging.Component(baseLogger, "api"))

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		monitor: mon,
		server: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: apiServer.Handler(),
		},
		history: history,
	}, nil
}

// Run starts the monitor loop and the HTTP listener and blocks until ctx is
// cancelled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.monitor.Start(ctx); err != nil {
		return fmt.Errorf("start monitor: %w", err)
	}

	a.logger.Info("listening", "addr", a.cfg.Server.Addr, "check_interval", a.cfg.Scheduler.Interval)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.shutdown(context.Background())
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return a.shutdown(stopCtx)
}

func (a *Application) shutdown(ctx context.Context) error {
	var errs []error

	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.monitor.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("monitor stop: %w", err))
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("history close: %w", err))
		}
	}

	return errors.Join(errs...)
}
