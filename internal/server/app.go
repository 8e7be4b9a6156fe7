// Package server wires the dashboard together: configuration, the Postgres
// pool and migrations, the services and form pipeline, and the HTTP and gRPC
// transports. Both transports stop on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/dmitrijs2005/invoicedash/internal/server/github"
	"github.com/dmitrijs2005/invoicedash/internal/server/mail"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
	"github.com/dmitrijs2005/invoicedash/internal/server/views"
	"github.com/dmitrijs2005/invoicedash/internal/server/web"

	gs "github.com/dmitrijs2005/invoicedash/internal/server/grpc"
)

// runner is a transport that serves until its context ends.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	runners map[string]runner
}

// openDB is a seam for tests.
var openDB = dbx.OpenPostgres

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}
	app.runners = app.build(rm)
	return app, nil
}

// build assembles the collaborator graph on top of an open pool.
func (app *App) build(rm repomanager.RepositoryManager) map[string]runner {
	c, logger, db := app.config, app.logger, app.db

	us := services.NewUserService(db, rm, c, logger)
	is := services.NewInvoiceService(db, rm, logger)
	rv := views.NewRevalidator()
	cs := services.NewCustomerService(db, rm, objstore.NewS3Store(c), rv, logger)

	var welcomer actions.Welcomer
	opts := []actions.Option{}
	if c.ResendAPIKey != "" {
		m := mail.NewResendMailer(c.ResendAPIKey, c.EmailFrom)
		welcomer = m
		opts = append(opts, actions.WithWelcomer(m))
	} else {
		logger.Warn(context.Background(), "RESEND_API_KEY not set, emails disabled")
	}

	pipeline := actions.NewPipeline(is, us, rv, logger, opts...)

	httpSrv := web.NewServer(c, logger, web.Deps{
		Sessions:  us,
		Actions:   pipeline,
		Invoices:  is,
		Customers: cs,
		Profiles:  github.NewClient(&http.Client{Timeout: 10 * time.Second}),
		Welcomer:  welcomer,
		Views:     rv,
		DB:        db,
	})
	grpcSrv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, pipeline, us, cs)

	return map[string]runner{"http": httpSrv, "grpc": grpcSrv}
}

// Run serves every transport until a shutdown signal arrives or one of them
// fails, then waits for the rest to drain and closes the pool.
func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.runAll(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) runAll(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup
	for name, r := range app.runners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				cancel()
			}
		}()
	}
	wg.Wait()
}
