package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, expires time.Time) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
