package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQuery     = `(?s)^SELECT\s+id,\s*name,\s*email,\s*image_url\s+FROM\s+customers\s+ORDER\s+BY\s+name\s+ASC\s*$`
	filteredQuery = `(?s)^SELECT\s+c\.id.*LEFT\s+JOIN\s+invoices\s+i.*ILIKE\s+\$1.*GROUP\s+BY`
	setImageQuery = `(?s)^UPDATE\s+customers\s+SET\s+image_url\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s*$`
	countQuery    = `^SELECT COUNT\(\*\) FROM customers$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQuery).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "image_url"}).
			AddRow("c-1", "Ada", "ada@example.com", "").
			AddRow("c-2", "Bob", "bob@example.com", "/bob.png"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Customer{
		{ID: "c-1", Name: "Ada", Email: "ada@example.com"},
		{ID: "c-2", Name: "Bob", Email: "bob@example.com", ImageURL: "/bob.png"},
	}, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "db error: db down")
}

func TestListFiltered_Totals(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(filteredQuery).WithArgs("%ad%").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid"}).
			AddRow("c-1", "Ada", "ada@example.com", "", int64(3), int64(1200), int64(800)))

	got, err := repo.ListFiltered(context.Background(), "ad")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].TotalInvoices)
	assert.Equal(t, int64(1200), got[0].TotalPending)
	assert.Equal(t, int64(800), got[0].TotalPaid)
	assert.Equal(t, "Ada", got[0].Name)
}

func TestListFiltered_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(filteredQuery).WillReturnError(errors.New("db err"))

	_, err := repo.ListFiltered(context.Background(), "")
	assert.ErrorContains(t, err, "db error")
}

func TestSetImage(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		execErr error
		wantErr error
	}{
		{name: "updated", rows: 1},
		{name: "unknown customer", rows: 0, wantErr: common.ErrorNotFound},
		{name: "malformed id", execErr: &pgconn.PgError{Code: "22P02"}, wantErr: common.ErrorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectExec(setImageQuery).WithArgs("https://cdn/x.png", "c-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.rows))
			}

			err := repo.SetImage(context.Background(), "c-1", "https://cdn/x.png")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSetImage_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(setImageQuery).WillReturnError(errors.New("db down"))

	err := repo.SetImage(context.Background(), "c-1", "x")
	assert.ErrorContains(t, err, "db error: db down")
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(countQuery).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
