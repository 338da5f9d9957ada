package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	xhttp "TrendScan/pkg/http"
	applogger "TrendScan/pkg/logger"
)

// Runner is the long-running workload of the process.
type Runner interface {
	Run(ctx context.Context) error
}

// Closer is an infrastructure client released at shutdown.
type Closer struct {
	Name  string
	Close func() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	runner     Runner
	httpServer *xhttp.Server
	closers    []Closer
	logger     *applogger.Logger
}

// New creates an App. httpServer may be nil when the status API is disabled.
func New(runner Runner, httpServer *xhttp.Server, l *applogger.Logger, closers ...Closer) *App {
	return &App{
		runner:     runner,
		httpServer: httpServer,
		closers:    closers,
		logger:     l,
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext runs until ctx is cancelled, then shuts everything down.
func (a *App) RunContext(ctx context.Context) error {
	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.logger.Error("http server start error", applogger.Error(err))
			return err
		}
	}

	err := a.runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("runner stopped with error", applogger.Error(err))
	} else {
		err = nil
		a.logger.Info("shutdown signal received")
	}

	a.shutdown()
	return err
}

// shutdown stops the HTTP server and closes clients in reverse order. The log
// collector is flushed first since it may publish through one of the clients.
func (a *App) shutdown() {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(context.Background()); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}
	a.logger.RemoveCollector()

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("resource", c.Name), applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}
