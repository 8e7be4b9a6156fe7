// Package users stores credential principals.
package users

import (
	"context"

	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

type Repository interface {
	// Create inserts user and reports the number of rows written.
	// A duplicate email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
