package invoices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

const filterClause = `
		WHERE c.name ILIKE $1
		   OR c.email ILIKE $1
		   OR i.amount::text ILIKE $1
		   OR i.date::text ILIKE $1
		   OR i.status::text ILIKE $1
`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, invoice *models.Invoice) (int64, error) {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
	`
	return r.exec(ctx, query, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.Date)
}

// execByID is exec for statements keyed by invoice id. A malformed id
// matches no row.
func (r *PostgresRepository) execByID(ctx context.Context, query string, args ...any) (int64, error) {
	n, err := r.exec(ctx, query, args...)
	if dbx.IsInvalidText(err) {
		return 0, nil
	}
	return n, err
}

// Update rewrites customer, amount and status; the issue date is kept.
func (r *PostgresRepository) Update(ctx context.Context, invoice *models.Invoice) (int64, error) {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`
	return r.execByID(ctx, query, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `
		DELETE FROM invoices
		WHERE id = $1
	`
	return r.execByID(ctx, query, id)
}

// Get returns common.ErrorNotFound for unknown and malformed ids alike.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date::text
		FROM invoices
		WHERE id = $1
	`
	inv := &models.Invoice{}
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	inv.Status = models.InvoiceStatus(status)
	return inv, nil
}

// ListFiltered matches query as a case-insensitive substring against the
// customer name and email and the invoice amount, date and status.
func (r *PostgresRepository) ListFiltered(ctx context.Context, query string, limit, offset int) ([]models.InvoiceRow, error) {
	q := `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date::text, c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id` + filterClause + `
		ORDER BY i.date DESC, i.id
		LIMIT $2 OFFSET $3
	`
	return r.queryRows(ctx, q, "%"+query+"%", limit, offset)
}

func (r *PostgresRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	q := `
		SELECT COUNT(*)
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id` + filterClause

	var n int64
	if err := r.db.QueryRowContext(ctx, q, "%"+query+"%").Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error) {
	q := `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date::text, c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		ORDER BY i.date DESC, i.id
		LIMIT $1
	`
	return r.queryRows(ctx, q, limit)
}

func (r *PostgresRepository) Summary(ctx context.Context) (models.InvoiceSummary, error) {
	q := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices
	`
	var s models.InvoiceSummary
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Count, &s.TotalPaid, &s.TotalPending); err != nil {
		return models.InvoiceSummary{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) queryRows(ctx context.Context, q string, args ...any) ([]models.InvoiceRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.InvoiceRow{}
	for rows.Next() {
		var row models.InvoiceRow
		var status string
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Amount, &status, &row.Date,
			&row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		row.Status = models.InvoiceStatus(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
