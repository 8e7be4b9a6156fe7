// Package customers reads customers for the invoice forms and the customers page.
package customers

import (
	"context"

	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Customer, error)
	ListFiltered(ctx context.Context, query string) ([]models.CustomerSummary, error)
	// SetImage returns common.ErrorNotFound when no customer has id.
	SetImage(ctx context.Context, id string, imageURL string) error
	Count(ctx context.Context) (int64, error)
}
