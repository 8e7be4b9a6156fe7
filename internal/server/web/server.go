// Package web serves the dashboard over HTTP. Pages and form actions answer
// with JSON; rendering is left to the client.
package web

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/github"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
)

// Sessions verifies and rotates sign-in tokens.
type Sessions interface {
	ParseAccessToken(token string) (*auth.Claims, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type Actions interface {
	CreateInvoice(ctx context.Context, values forms.Values) (actions.Outcome, error)
	UpdateInvoice(ctx context.Context, id string, values forms.Values) (actions.Outcome, error)
	DeleteInvoice(ctx context.Context, id string) (actions.Outcome, error)
	Register(ctx context.Context, values forms.Values) (actions.Outcome, error)
	Authenticate(ctx context.Context, values forms.Values) (actions.Outcome, error)
}

type Invoices interface {
	Get(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context, query string, page int) (*services.InvoicePage, error)
	Overview(ctx context.Context) (*services.Overview, error)
}

type Customers interface {
	List(ctx context.Context) ([]models.Customer, error)
	ListFiltered(ctx context.Context, query string) ([]models.CustomerSummary, error)
	AvatarUpload(ctx context.Context, customerID, contentType string) (*objstore.Upload, error)
}

type Profiles interface {
	Profile(ctx context.Context, login string) (*github.Profile, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Views answers conditional GETs for list pages.
type Views interface {
	NotModified(w http.ResponseWriter, r *http.Request, path, variant string) bool
}

// Deps are the collaborators behind the routes. Welcomer may be nil when no
// mail provider is configured.
type Deps struct {
	Sessions  Sessions
	Actions   Actions
	Invoices  Invoices
	Customers Customers
	Profiles  Profiles
	Welcomer  actions.Welcomer
	Views     Views
	DB        Pinger
}

var _ Pinger = (*sql.DB)(nil)

type Server struct {
	address string
	deps    Deps
	cfg     *config.Config
	logger  logging.Logger
}

func NewServer(cfg *config.Config, l logging.Logger, deps Deps) *Server {
	return &Server{
		address: cfg.EndpointAddrHTTP,
		deps:    deps,
		cfg:     cfg,
		logger:  l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// Routes builds the full handler: logging, then session resolution, then the mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.page(s.home))
	mux.Handle("GET /login", s.page(s.loginForm))
	mux.Handle("POST /login", s.page(s.login))
	mux.Handle("GET /register", s.page(s.registerForm))
	mux.Handle("POST /register", s.page(s.register))
	mux.HandleFunc("POST /logout", s.logout)

	mux.Handle("GET /dashboard", s.page(s.dashboard))
	mux.Handle("GET /dashboard/invoices", s.page(s.listInvoices))
	mux.Handle("GET /dashboard/invoices/create", s.page(s.createInvoiceForm))
	mux.Handle("POST /dashboard/invoices/create", s.page(s.createInvoice))
	mux.Handle("GET /dashboard/invoices/{id}", s.page(s.getInvoice))
	mux.Handle("GET /dashboard/invoices/{id}/edit", s.page(s.getInvoice))
	mux.Handle("POST /dashboard/invoices/{id}/edit", s.page(s.updateInvoice))
	mux.Handle("POST /dashboard/invoices/{id}/delete", s.page(s.deleteInvoice))
	mux.Handle("GET /dashboard/customers", s.page(s.listCustomers))
	mux.Handle("POST /dashboard/customers/{id}/avatar", s.page(s.customerAvatar))
	mux.Handle("GET /dashboard/github", s.page(s.githubProfile))

	mux.HandleFunc("GET /api/hello", s.helloGet)
	mux.HandleFunc("POST /api/hello", s.helloMessage("Hello World"))
	mux.HandleFunc("PUT /api/hello", s.helloMessage("Hello World Put"))
	mux.HandleFunc("DELETE /api/hello", s.helloMessage("Hello World Delete"))
	mux.HandleFunc("POST /api/send", s.send)
	mux.HandleFunc("GET /healthz", s.healthz)

	return s.logRequests(s.withPrincipal(mux))
}
