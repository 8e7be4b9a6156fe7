// Package actions runs the dashboard's form mutations: validate, persist,
// invalidate affected views, then tell the transport where to go next.
//
// Every action returns an Outcome describing what the user should see. The
// error return is reserved for failures the user cannot act on (a cancelled
// request, a broken hasher); transports answer those with a generic 500.
package actions

import (
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
)

type Kind int

const (
	Success Kind = iota
	Failure
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Outcome is the user-facing result of an action. Session is set when the
// action signed the user in.
type Outcome struct {
	Kind        Kind
	FieldErrors forms.FieldErrors
	Message     string
	Location    string
	Session     *services.TokenPair
}

func fail(msg string, errs forms.FieldErrors) Outcome {
	return Outcome{Kind: Failure, Message: msg, FieldErrors: errs}
}

func redirect(location string) Outcome {
	return Outcome{Kind: Redirect, Location: location}
}
