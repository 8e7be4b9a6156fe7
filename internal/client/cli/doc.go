// Package cli implements dashctl, the operator command line for the invoice
// dashboard.
//
// Database commands (migrate, user add) talk to Postgres directly using the
// server configuration file and environment. Remote commands (ping, invoice)
// go through the gRPC Actions service and sign in first, so they run the
// same validation and invalidation as the web forms.
package cli
