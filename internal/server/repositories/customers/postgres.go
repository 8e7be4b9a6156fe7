package customers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, name, email, image_url
		FROM customers
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListFiltered matches name or email and attaches per-customer invoice totals.
func (r *PostgresRepository) ListFiltered(ctx context.Context, query string) ([]models.CustomerSummary, error) {
	q := `
		SELECT c.id, c.name, c.email, c.image_url,
		       COUNT(i.id),
		       COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)
		FROM customers c
		LEFT JOIN invoices i ON c.id = i.customer_id
		WHERE c.name ILIKE $1 OR c.email ILIKE $1
		GROUP BY c.id, c.name, c.email, c.image_url
		ORDER BY c.name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.CustomerSummary{}
	for rows.Next() {
		var c models.CustomerSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL,
			&c.TotalInvoices, &c.TotalPending, &c.TotalPaid); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) SetImage(ctx context.Context, id string, imageURL string) error {
	query := `
		UPDATE customers
		SET image_url = $1
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, imageURL, id)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
