package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		authenticated bool
		path          string
		want          Decision
	}{
		{true, "/dashboard", Allow},
		{true, "/dashboard/invoices/create", Allow},
		{false, "/dashboard", Deny},
		{false, "/dashboard/customers", Deny},
		{true, "/login", RedirectToDashboard},
		{true, "/", RedirectToDashboard},
		{false, "/login", Allow},
		{false, "/register", Allow},
		{false, "/dashboardx", Allow},
		{true, "/dashboardx", RedirectToDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.authenticated, tt.path))
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
	assert.Equal(t, "redirect-to-dashboard", RedirectToDashboard.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
