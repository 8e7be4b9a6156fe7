package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/invoicedash/internal/client/client"
	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
)

// Backend is the direct database access used by the operator commands.
type Backend interface {
	Migrate(ctx context.Context) error
	AddUser(ctx context.Context, email, name, passwordHash string) (int64, error)
	Close() error
}

// Remote is the gRPC surface used by the remote commands.
type Remote interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, email string, password []byte) (*client.Outcome, error)
	CreateInvoice(ctx context.Context, customerID, amount, status string) (*client.Outcome, error)
	DeleteInvoice(ctx context.Context, id string) (*client.Outcome, error)
	CustomerAvatar(ctx context.Context, customerID, contentType string) (*client.Avatar, error)
	Close() error
}

type App struct {
	configPath string
	addr       string
	reader     *bufio.Reader

	openBackend func(ctx context.Context, configPath string) (Backend, error)
	dialRemote  func(addr string) (Remote, error)
}

func NewApp() *App {
	return &App{
		reader:      bufio.NewReader(os.Stdin),
		openBackend: openPostgresBackend,
		dialRemote: func(addr string) (Remote, error) {
			return client.NewGRPCClient(addr)
		},
	}
}

// Execute runs dashctl with args and writes to out.
func (a *App) Execute(ctx context.Context, args []string, out io.Writer) error {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd.ExecuteContext(ctx)
}

type pgBackend struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	users *services.UserService
}

func openPostgresBackend(ctx context.Context, configPath string) (Backend, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	db, err := dbx.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	rm := repomanager.NewPostgresRepositoryManager()
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	return &pgBackend{db: db, rm: rm, users: services.NewUserService(db, rm, cfg, logger)}, nil
}

func (b *pgBackend) Migrate(ctx context.Context) error {
	return b.rm.RunMigrations(ctx, b.db)
}

func (b *pgBackend) AddUser(ctx context.Context, email, name, passwordHash string) (int64, error) {
	return b.users.Register(ctx, email, name, passwordHash)
}

func (b *pgBackend) Close() error {
	return b.db.Close()
}
