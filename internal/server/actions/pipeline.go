package actions

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/money"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
)

const (
	msgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	msgCreateFailed  = "Database Error: Failed to Create Invoice."
	msgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	msgUpdateFailed  = "Database Error: Failed to Update Invoice."
	msgDeleteFailed  = "Database Error: Failed to Delete Invoice."
	msgDeleted       = "Deleted Invoice."
	msgUserFailed    = "Database Error: Failed to Create User."
	msgEmailTaken    = "Email already exists. Try again."
	msgBadCreds      = "Invalid credentials."
	msgAuthFailed    = "Something went wrong."
	msgAmountInvalid = "Please enter an amount greater than $0."
)

// InvoiceStore persists invoices; errors are common.ErrorInternal or fatal.
type InvoiceStore interface {
	Create(ctx context.Context, inv *models.Invoice) (int64, error)
	Update(ctx context.Context, inv *models.Invoice) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Accounts registers and signs in users.
type Accounts interface {
	Register(ctx context.Context, email, name, passwordHash string) (int64, error)
	Authenticate(ctx context.Context, email, password string) (*services.TokenPair, error)
}

type Invalidator interface {
	Invalidate(path string)
}

// Welcomer greets new users. Optional.
type Welcomer interface {
	SendWelcome(ctx context.Context, to, firstName string) (string, error)
}

type Pipeline struct {
	invoices InvoiceStore
	accounts Accounts
	views    Invalidator
	welcomer Welcomer
	log      logging.Logger

	now  func() time.Time
	hash func(string) (string, error)
}

type Option func(*Pipeline)

func WithWelcomer(w Welcomer) Option {
	return func(p *Pipeline) { p.welcomer = w }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(invoices InvoiceStore, accounts Accounts, views Invalidator, log logging.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		invoices: invoices,
		accounts: accounts,
		views:    views,
		log:      log.With("module", "actions"),
		now:      time.Now,
		hash:     auth.HashPassword,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// storeFailure reports whether err is a store error the user may see as a
// message. Anything else is fatal.
func storeFailure(err error) bool {
	return errors.Is(err, common.ErrorInternal)
}

func (p *Pipeline) bindInvoice(values forms.Values, invalidMsg string) (*models.Invoice, *Outcome) {
	res := forms.InvoiceSchema.Validate(values)
	if !res.OK {
		o := fail(invalidMsg, res.FieldErrors)
		return nil, &o
	}

	cents, err := money.ToCents(res.Data.Amount)
	if err != nil || cents < 1 {
		o := fail(invalidMsg, forms.FieldErrors{"amount": {msgAmountInvalid}})
		return nil, &o
	}

	return &models.Invoice{
		CustomerID: res.Data.CustomerID,
		Amount:     cents,
		Status:     res.Data.Status,
	}, nil
}

// CreateInvoice stores a new invoice dated today (UTC) and sends the user
// back to the invoices list.
func (p *Pipeline) CreateInvoice(ctx context.Context, values forms.Values) (Outcome, error) {
	inv, invalid := p.bindInvoice(values, msgCreateInvalid)
	if invalid != nil {
		return *invalid, nil
	}
	inv.Date = p.now().UTC().Format(models.DateLayout)

	if _, err := p.invoices.Create(ctx, inv); err != nil {
		if storeFailure(err) {
			return fail(msgCreateFailed, nil), nil
		}
		return Outcome{}, err
	}

	p.views.Invalidate(common.InvoicesPath)
	p.log.Info(ctx, "invoice created", "customer_id", inv.CustomerID, "amount", inv.Amount)
	return redirect(common.InvoicesPath), nil
}

// UpdateInvoice rewrites invoice id. An id that matches nothing is not an
// error; the user lands on the list either way.
func (p *Pipeline) UpdateInvoice(ctx context.Context, id string, values forms.Values) (Outcome, error) {
	inv, invalid := p.bindInvoice(values, msgUpdateInvalid)
	if invalid != nil {
		return *invalid, nil
	}
	inv.ID = id

	n, err := p.invoices.Update(ctx, inv)
	if err != nil {
		if storeFailure(err) {
			return fail(msgUpdateFailed, nil), nil
		}
		return Outcome{}, err
	}
	if n == 0 {
		p.log.Warn(ctx, "invoice update matched no rows", "invoice_id", id)
	}

	p.views.Invalidate(common.InvoicesPath)
	return redirect(common.InvoicesPath), nil
}

// DeleteInvoice is idempotent: deleting a missing invoice succeeds.
func (p *Pipeline) DeleteInvoice(ctx context.Context, id string) (Outcome, error) {
	if _, err := p.invoices.Delete(ctx, id); err != nil {
		if storeFailure(err) {
			return fail(msgDeleteFailed, nil), nil
		}
		return Outcome{}, err
	}

	p.views.Invalidate(common.InvoicesPath)
	return Outcome{Kind: Success, Message: msgDeleted}, nil
}

// Register creates the account, signs it in and redirects to the dashboard.
func (p *Pipeline) Register(ctx context.Context, values forms.Values) (Outcome, error) {
	res := forms.RegisterSchema.Validate(values)
	if !res.OK {
		return fail(res.Message, res.FieldErrors), nil
	}
	in := res.Data

	hash, err := p.hash(in.Password)
	if err != nil {
		return Outcome{}, err
	}

	n, err := p.accounts.Register(ctx, in.Email, in.Name, hash)
	switch {
	case errors.Is(err, common.ErrorConflict):
		return fail(msgEmailTaken, nil), nil
	case err != nil && storeFailure(err):
		return fail(msgUserFailed, nil), nil
	case err != nil:
		return Outcome{}, err
	case n != 1:
		p.log.Error(ctx, "user insert affected unexpected rows", "rows", n)
		return fail(msgUserFailed, nil), nil
	}

	out, err := p.signIn(ctx, in.Email, in.Password)
	if err != nil || out.Kind != Redirect {
		return out, err
	}

	p.welcome(ctx, in.Email, in.Name)
	return out, nil
}

// Authenticate signs the user in. Every credential problem collapses into
// one message so the response never reveals whether the email exists.
func (p *Pipeline) Authenticate(ctx context.Context, values forms.Values) (Outcome, error) {
	return p.signIn(ctx, values.Get("email"), values.Get("password"))
}

func (p *Pipeline) signIn(ctx context.Context, email, password string) (Outcome, error) {
	pair, err := p.accounts.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return fail(msgBadCreds, nil), nil
	case err != nil && storeFailure(err):
		return fail(msgAuthFailed, nil), nil
	case err != nil:
		return Outcome{}, err
	}

	out := redirect(common.DashboardPath)
	out.Session = pair
	return out, nil
}

func (p *Pipeline) welcome(ctx context.Context, email, name string) {
	if p.welcomer == nil {
		return
	}
	if _, err := p.welcomer.SendWelcome(ctx, email, name); err != nil {
		p.log.Warn(ctx, "welcome email not sent", "error", err)
	}
}
