package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "github.com/gman-top/Tradepilotx/internal/domain/repository"
	"github.com/gman-top/Tradepilotx/internal/usecase"
	pkgch "github.com/gman-top/Tradepilotx/pkg/clickhouse"
	"github.com/gman-top/Tradepilotx/pkg/config"
	xhttp "github.com/gman-top/Tradepilotx/pkg/http"
	applogger "github.com/gman-top/Tradepilotx/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	svc        *usecase.ConvictionService
	store      domrepo.ScoreStore
	publisher  domrepo.ScorePublisher
	chClient   *pkgch.Client
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	svc *usecase.ConvictionService,
	store domrepo.ScoreStore,
	publisher domrepo.ScorePublisher,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		svc:       svc,
		store:     store,
		publisher: publisher,
		chClient:  chClient,
		handler:   handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.store != nil {
		if err := a.store.Init(ctx); err != nil {
			a.log.Error("score store init error", applogger.Error(err))
			return err
		}
		a.log.Info("score store ready", applogger.String("table", a.cfg.History.Table))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	if interval := a.cfg.Scoring.ScanInterval; interval > 0 {
		go a.scanLoop(ctx, interval)
		a.log.Info("scan loop started",
			applogger.Duration("interval", interval),
			applogger.Int("watchlist", len(a.cfg.Watchlist)),
		)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// scanLoop scores the watchlist on a fixed cadence so history and the event
// stream stay populated even when no one is hitting the API.
func (a *App) scanLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			entries, err := a.svc.ScanMarket(ctx)
			if err != nil {
				a.log.Error("scheduled scan error", applogger.Error(err))
				continue
			}
			a.log.Info("scheduled scan complete", applogger.Int("assets", len(entries)))
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
