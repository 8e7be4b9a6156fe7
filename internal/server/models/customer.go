package models

// Customer is billed through invoices.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// CustomerSummary is a customer with invoice totals (cents).
type CustomerSummary struct {
	Customer
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}
