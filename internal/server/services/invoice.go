package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/repomanager"
)

// InvoicesPerPage is the page size of the invoices list.
const InvoicesPerPage = 6

// LatestInvoices is how many recent invoices the overview shows.
const LatestInvoices = 5

// InvoicePage is one page of the filtered invoice list.
type InvoicePage struct {
	Items      []models.InvoiceRow
	Page       int
	TotalPages int
	Total      int64
}

// Overview is the dashboard landing data.
type Overview struct {
	Invoices  models.InvoiceSummary
	Customers int64
	Latest    []models.InvoiceRow
}

type InvoiceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewInvoiceService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *InvoiceService {
	return &InvoiceService{db: db, repomanager: m, log: log.With("module", "invoices")}
}

// Create, Update and Delete report affected rows. Store failures surface as
// common.ErrorInternal.
func (s *InvoiceService) Create(ctx context.Context, inv *models.Invoice) (int64, error) {
	n, err := s.repomanager.Invoices(s.db).Create(ctx, inv)
	if err != nil {
		return 0, internalError(ctx, s.log, "invoice insert failed", err)
	}
	return n, nil
}

func (s *InvoiceService) Update(ctx context.Context, inv *models.Invoice) (int64, error) {
	n, err := s.repomanager.Invoices(s.db).Update(ctx, inv)
	if err != nil {
		return 0, internalError(ctx, s.log, "invoice update failed", err, "invoice_id", inv.ID)
	}
	return n, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repomanager.Invoices(s.db).Delete(ctx, id)
	if err != nil {
		return 0, internalError(ctx, s.log, "invoice delete failed", err, "invoice_id", id)
	}
	return n, nil
}

// Get returns common.ErrorNotFound for unknown ids.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := s.repomanager.Invoices(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(ctx, s.log, "invoice fetch failed", err, "invoice_id", id)
	}
	return inv, nil
}

// List returns page (1-based, clamped to at least 1) of invoices matching query.
func (s *InvoiceService) List(ctx context.Context, query string, page int) (*InvoicePage, error) {
	if page < 1 {
		page = 1
	}
	repo := s.repomanager.Invoices(s.db)

	total, err := repo.CountFiltered(ctx, query)
	if err != nil {
		return nil, internalError(ctx, s.log, "invoice count failed", err)
	}
	items, err := repo.ListFiltered(ctx, query, InvoicesPerPage, (page-1)*InvoicesPerPage)
	if err != nil {
		return nil, internalError(ctx, s.log, "invoice list failed", err)
	}

	return &InvoicePage{
		Items:      items,
		Page:       page,
		TotalPages: int((total + InvoicesPerPage - 1) / InvoicesPerPage),
		Total:      total,
	}, nil
}

func (s *InvoiceService) Overview(ctx context.Context) (*Overview, error) {
	invoices := s.repomanager.Invoices(s.db)

	summary, err := invoices.Summary(ctx)
	if err != nil {
		return nil, internalError(ctx, s.log, "invoice summary failed", err)
	}
	latest, err := invoices.Latest(ctx, LatestInvoices)
	if err != nil {
		return nil, internalError(ctx, s.log, "latest invoices failed", err)
	}
	customers, err := s.repomanager.Customers(s.db).Count(ctx)
	if err != nil {
		return nil, internalError(ctx, s.log, "customer count failed", err)
	}

	return &Overview{Invoices: summary, Customers: customers, Latest: latest}, nil
}
