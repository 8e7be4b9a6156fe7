// Package models defines the server-side records persisted in Postgres.
package models

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// InvoiceStatuses lists the accepted statuses in display order.
var InvoiceStatuses = []InvoiceStatus{InvoiceStatusPending, InvoiceStatusPaid}

// DateLayout is the calendar-date format used for Invoice.Date.
const DateLayout = "2006-01-02"

// Invoice is a billed amount for a customer. Amount is in cents.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
	Date       string
}

// InvoiceRow is an invoice joined with its customer for list views.
type InvoiceRow struct {
	Invoice
	Name     string
	Email    string
	ImageURL string
}

// InvoiceSummary aggregates all invoices for the dashboard overview (cents).
type InvoiceSummary struct {
	Count        int64
	TotalPaid    int64
	TotalPending int64
}
