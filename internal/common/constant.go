package common

const (
	// AccessTokenHeaderName is the gRPC metadata key and HTTP cookie name
	// carrying the JWT access token.
	AccessTokenHeaderName = "access_token"

	// RefreshTokenCookieName carries the opaque refresh token.
	RefreshTokenCookieName = "refresh_token"

	// DashboardPath is the root of the protected area.
	DashboardPath = "/dashboard"

	// InvoicesPath is the invoices list view.
	InvoicesPath = "/dashboard/invoices"

	// LoginPath is where unauthenticated visitors of the protected area land.
	LoginPath = "/login"
)
