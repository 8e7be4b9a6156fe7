// Package invoices stores invoices and answers the dashboard's list queries.
package invoices

import (
	"context"

	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

// Repository mutations report affected rows; zero is not an error.
type Repository interface {
	Create(ctx context.Context, invoice *models.Invoice) (int64, error)
	Update(ctx context.Context, invoice *models.Invoice) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]models.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error)
	Summary(ctx context.Context) (models.InvoiceSummary, error)
}
