package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/customers"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeUsersRepo keeps users by email and enforces email uniqueness.
type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo(seed ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	for _, u := range seed {
		r.byEmail[u.Email] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return 0, common.ErrorConflict
	}
	cp := *u
	cp.ID = "u-" + u.Email
	f.byEmail[u.Email] = &cp
	return 1, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error

	created []string
	deleted []string
	expires []time.Time
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, expires time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	f.expires = append(f.expires, expires)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeInvoicesRepo struct {
	invoices.Repository

	rows    int64
	err     error
	got     *models.Invoice
	list    []models.InvoiceRow
	count   int64
	summary models.InvoiceSummary

	limit, offset int
}

func (f *fakeInvoicesRepo) Create(ctx context.Context, inv *models.Invoice) (int64, error) {
	f.got = inv
	return f.rows, f.err
}

func (f *fakeInvoicesRepo) Update(ctx context.Context, inv *models.Invoice) (int64, error) {
	f.got = inv
	return f.rows, f.err
}

func (f *fakeInvoicesRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.rows, f.err
}

func (f *fakeInvoicesRepo) Get(ctx context.Context, id string) (*models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Invoice{ID: id}, nil
}

func (f *fakeInvoicesRepo) ListFiltered(ctx context.Context, query string, limit, offset int) ([]models.InvoiceRow, error) {
	f.limit, f.offset = limit, offset
	return f.list, f.err
}

func (f *fakeInvoicesRepo) CountFiltered(ctx context.Context, query string) (int64, error) {
	return f.count, f.err
}

func (f *fakeInvoicesRepo) Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error) {
	f.limit = limit
	return f.list, f.err
}

func (f *fakeInvoicesRepo) Summary(ctx context.Context) (models.InvoiceSummary, error) {
	return f.summary, f.err
}

type fakeCustomersRepo struct {
	customers.Repository

	list     []models.Customer
	filtered []models.CustomerSummary
	count    int64
	err      error

	imageID, imageURL string
}

func (f *fakeCustomersRepo) List(ctx context.Context) ([]models.Customer, error) {
	return f.list, f.err
}

func (f *fakeCustomersRepo) ListFiltered(ctx context.Context, query string) ([]models.CustomerSummary, error) {
	return f.filtered, f.err
}

func (f *fakeCustomersRepo) SetImage(ctx context.Context, id, url string) error {
	if f.err != nil {
		return f.err
	}
	f.imageID, f.imageURL = id, url
	return nil
}

func (f *fakeCustomersRepo) Count(ctx context.Context) (int64, error) {
	return f.count, f.err
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	i *fakeInvoicesRepo
	c *fakeCustomersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Invoices(db dbx.DBTX) invoices.Repository           { return m.i }
func (m *fakeRepoManager) Customers(db dbx.DBTX) customers.Repository         { return m.c }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	return NewUserService(db, rm, testConfig(), logging.Nop{})
}
