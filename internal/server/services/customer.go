package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/repomanager"
)

// AvatarPresigner signs direct-to-bucket uploads.
type AvatarPresigner interface {
	PresignAvatarUpload(ctx context.Context, customerID, contentType string) (*objstore.Upload, error)
}

// Invalidator marks cached renderings of a path as stale.
type Invalidator interface {
	Invalidate(path string)
}

type CustomerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   AvatarPresigner
	views       Invalidator
	log         logging.Logger
}

func NewCustomerService(db *sql.DB, m repomanager.RepositoryManager, p AvatarPresigner, v Invalidator, log logging.Logger) *CustomerService {
	return &CustomerService{db: db, repomanager: m, presigner: p, views: v, log: log.With("module", "customers")}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	list, err := s.repomanager.Customers(s.db).List(ctx)
	if err != nil {
		return nil, internalError(ctx, s.log, "customer list failed", err)
	}
	return list, nil
}

func (s *CustomerService) ListFiltered(ctx context.Context, query string) ([]models.CustomerSummary, error) {
	list, err := s.repomanager.Customers(s.db).ListFiltered(ctx, query)
	if err != nil {
		return nil, internalError(ctx, s.log, "customer search failed", err)
	}
	return list, nil
}

// AvatarUpload signs an upload for the customer's image and points the
// customer at the object's public URL. Invoice rows show the image, so the
// invoice list is invalidated. Unknown customers yield common.ErrorNotFound,
// non-image types objstore.ErrUnsupportedType.
func (s *CustomerService) AvatarUpload(ctx context.Context, customerID, contentType string) (*objstore.Upload, error) {
	up, err := s.presigner.PresignAvatarUpload(ctx, customerID, contentType)
	if err != nil {
		if errors.Is(err, objstore.ErrUnsupportedType) {
			return nil, err
		}
		return nil, internalError(ctx, s.log, "avatar presign failed", err, "customer_id", customerID)
	}

	if err := s.repomanager.Customers(s.db).SetImage(ctx, customerID, up.PublicURL); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(ctx, s.log, "avatar save failed", err, "customer_id", customerID)
	}
	s.views.Invalidate(common.InvoicesPath)
	return up, nil
}
