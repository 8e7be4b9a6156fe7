// Package gate decides whether a request may reach a page.
package gate

import (
	"strings"

	"github.com/dmitrijs2005/invoicedash/internal/common"
)

type Decision int

const (
	Allow Decision = iota
	Deny
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case RedirectToDashboard:
		return "redirect-to-dashboard"
	}
	return "unknown"
}

// Protected reports whether path is the dashboard or below it.
func Protected(path string) bool {
	return path == common.DashboardPath || strings.HasPrefix(path, common.DashboardPath+"/")
}

// Decide applies the page policy: the dashboard needs a session, every other
// page sends signed-in users to the dashboard.
func Decide(authenticated bool, path string) Decision {
	switch {
	case Protected(path) && authenticated:
		return Allow
	case Protected(path):
		return Deny
	case authenticated:
		return RedirectToDashboard
	default:
		return Allow
	}
}
