package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/customers"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Invoices(db dbx.DBTX) invoices.Repository
	Customers(db dbx.DBTX) customers.Repository
}
