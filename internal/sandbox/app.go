// Package sandbox runs an in-memory marketplace backend that speaks the
// same REST contract as production, for local runs of the admin console.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/config"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/handler"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/market"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	market *market.Market
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	m := market.New()
	err := m.Populate(market.Seed{
		AdminPhone:     c.AdminPhone,
		AdminPassword:  c.AdminPassword,
		MemberPhone:    "+96171000000",
		MemberPassword: "member123",
		Users:          c.SeedUsers,
		PendingAds:     c.SeedAds,
		ApprovedAds:    c.SeedAds / 2,
	})
	if err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}

	return &App{config: c, logger: logger, market: m}, nil
}

func (app *App) Handler() http.Handler {
	return handler.NewRouter(app.market, handler.Options{
		Logger:    app.logger,
		SecretKey: []byte(app.config.SecretKey),
		TokenTTL:  app.config.TokenTTL,
		BasePath:  app.config.BasePath,
	})
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info(ctx, "sandbox listening", "addr", ln.Addr().String(), "base_path", app.config.BasePath)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info(context.Background(), "shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
