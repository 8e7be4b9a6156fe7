package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	up  *objstore.Upload
	err error
}

func (f *fakePresigner) PresignAvatarUpload(ctx context.Context, customerID, contentType string) (*objstore.Upload, error) {
	return f.up, f.err
}

type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(path string) { f.paths = append(f.paths, path) }

func newCustomerService(t *testing.T, c *fakeCustomersRepo, p AvatarPresigner) (*CustomerService, *fakeInvalidator) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	v := &fakeInvalidator{}
	return NewCustomerService(db, &fakeRepoManager{c: c}, p, v, logging.Nop{}), v
}

func TestCustomerService_Lists(t *testing.T) {
	repo := &fakeCustomersRepo{
		list:     []models.Customer{{ID: "c-1", Name: "Ada"}},
		filtered: []models.CustomerSummary{{Customer: models.Customer{ID: "c-1"}, TotalInvoices: 2}},
	}
	s, _ := newCustomerService(t, repo, nil)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.list, list)

	filtered, err := s.ListFiltered(context.Background(), "ad")
	require.NoError(t, err)
	assert.Equal(t, repo.filtered, filtered)

	repo.err = errBoom
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.ListFiltered(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestCustomerService_AvatarUpload(t *testing.T) {
	repo := &fakeCustomersRepo{}
	up := &objstore.Upload{Key: "k", URL: "http://signed", PublicURL: "http://public/k"}
	s, views := newCustomerService(t, repo, &fakePresigner{up: up})

	got, err := s.AvatarUpload(context.Background(), "c-1", "image/png")
	require.NoError(t, err)
	assert.Same(t, up, got)
	assert.Equal(t, "c-1", repo.imageID)
	assert.Equal(t, "http://public/k", repo.imageURL)
	assert.Equal(t, []string{common.InvoicesPath}, views.paths)
}

func TestCustomerService_AvatarUploadErrors(t *testing.T) {
	up := &objstore.Upload{PublicURL: "p"}

	tests := []struct {
		name      string
		presigner *fakePresigner
		repoErr   error
		want      error
	}{
		{name: "unsupported type", presigner: &fakePresigner{err: fmt.Errorf("%w: x", objstore.ErrUnsupportedType)}, want: objstore.ErrUnsupportedType},
		{name: "presign failure", presigner: &fakePresigner{err: errBoom}, want: common.ErrorInternal},
		{name: "unknown customer", presigner: &fakePresigner{up: up}, repoErr: common.ErrorNotFound, want: common.ErrorNotFound},
		{name: "store failure", presigner: &fakePresigner{up: up}, repoErr: errBoom, want: common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, views := newCustomerService(t, &fakeCustomersRepo{err: tt.repoErr}, tt.presigner)

			_, err := s.AvatarUpload(context.Background(), "c-1", "image/png")
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, views.paths)
		})
	}
}
