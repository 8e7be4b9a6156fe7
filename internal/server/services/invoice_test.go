package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceService(t *testing.T, i *fakeInvoicesRepo, c *fakeCustomersRepo) *InvoiceService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewInvoiceService(db, &fakeRepoManager{i: i, c: c}, logging.Nop{})
}

func TestInvoiceService_Mutations(t *testing.T) {
	repo := &fakeInvoicesRepo{rows: 1}
	s := newInvoiceService(t, repo, nil)
	inv := &models.Invoice{CustomerID: "c-1", Amount: 1000, Status: models.InvoiceStatusPending}

	n, err := s.Create(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Same(t, inv, repo.got)

	repo.rows = 0
	n, err = s.Update(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = s.Delete(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestInvoiceService_StoreErrorsAreInternal(t *testing.T) {
	repo := &fakeInvoicesRepo{err: fmt.Errorf("db error: %w", errBoom)}
	s := newInvoiceService(t, repo, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, &models.Invoice{})
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Update(ctx, &models.Invoice{ID: "x"})
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Delete(ctx, "x")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Get(ctx, "x")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.List(ctx, "", 1)
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Overview(ctx)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestInvoiceService_GetNotFound(t *testing.T) {
	s := newInvoiceService(t, &fakeInvoicesRepo{err: common.ErrorNotFound}, nil)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInvoiceService_List(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		count      int64
		wantPage   int
		wantOffset int
		wantPages  int
	}{
		{name: "first page", page: 1, count: 13, wantPage: 1, wantOffset: 0, wantPages: 3},
		{name: "third page", page: 3, count: 13, wantPage: 3, wantOffset: 12, wantPages: 3},
		{name: "page clamps to one", page: -4, count: 6, wantPage: 1, wantOffset: 0, wantPages: 1},
		{name: "empty", page: 1, count: 0, wantPage: 1, wantOffset: 0, wantPages: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeInvoicesRepo{count: tt.count, list: []models.InvoiceRow{}}
			s := newInvoiceService(t, repo, nil)

			got, err := s.List(context.Background(), "ada", tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, tt.count, got.Total)
			assert.Equal(t, InvoicesPerPage, repo.limit)
			assert.Equal(t, tt.wantOffset, repo.offset)
		})
	}
}

func TestInvoiceService_Overview(t *testing.T) {
	latest := []models.InvoiceRow{{Invoice: models.Invoice{ID: "inv-1"}, Name: "Ada"}}
	repo := &fakeInvoicesRepo{
		list:    latest,
		summary: models.InvoiceSummary{Count: 2, TotalPaid: 100, TotalPending: 50},
	}
	s := newInvoiceService(t, repo, &fakeCustomersRepo{count: 7})

	got, err := s.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Overview{Invoices: repo.summary, Customers: 7, Latest: latest}, got)
	assert.Equal(t, LatestInvoices, repo.limit)
}
