package forms

import "github.com/dmitrijs2005/invoicedash/internal/server/models"

// InvoiceInput is a validated invoice submission. Amount is in dollars.
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     models.InvoiceStatus
}

var InvoiceSchema = Schema[InvoiceInput]{
	Message: "Missing Fields.",
	Fields: []Field{
		{Name: "customerId", Rules: []Rule{Required("Please select a customer.")}},
		{Name: "amount", Rules: []Rule{
			Number("Please enter a valid amount."),
			GreaterThan(0, "Please enter an amount greater than $0."),
		}},
		{Name: "status", Rules: []Rule{
			OneOf("Please select an invoice status.",
				string(models.InvoiceStatusPending), string(models.InvoiceStatusPaid)),
		}},
	},
	Bind: func(in map[string]*Input) InvoiceInput {
		return InvoiceInput{
			CustomerID: in["customerId"].Raw,
			Amount:     in["amount"].Num,
			Status:     models.InvoiceStatus(in["status"].Raw),
		}
	},
}

// RegisterInput is a validated sign-up. Password is still plaintext.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

var RegisterSchema = Schema[RegisterInput]{
	Message: "Missing Fields. Failed to Create User.",
	Fields: []Field{
		{Name: "email", Rules: []Rule{Required("Email is required."), Email("Invalid email address.")}},
		{Name: "name", Rules: []Rule{MinLength(1, "Name is required.")}},
		{Name: "password", Rules: []Rule{
			MinLength(6, "Password must be at least 6 characters."),
			MaxBytes(72, "Password must be at most 72 bytes."),
		}},
		{Name: "confirm-password", Key: "confirmPassword", Rules: []Rule{
			MinLength(6, "Password must be at least 6 characters."),
		}},
	},
	Checks: []Check{Equal("password", "confirmPassword", "Passwords don't match.")},
	Bind: func(in map[string]*Input) RegisterInput {
		return RegisterInput{
			Email:    in["email"].Raw,
			Name:     in["name"].Raw,
			Password: in["password"].Raw,
		}
	},
}

// Credentials is a validated sign-in attempt.
type Credentials struct {
	Email    string
	Password string
}

var CredentialsSchema = Schema[Credentials]{
	Message: "Invalid credentials.",
	Fields: []Field{
		{Name: "email", Rules: []Rule{Required("Email is required."), Email("Invalid email address.")}},
		{Name: "password", Rules: []Rule{MinLength(6, "Password must be at least 6 characters.")}},
	},
	Bind: func(in map[string]*Input) Credentials {
		return Credentials{Email: in["email"].Raw, Password: in["password"].Raw}
	},
}
