// Package client talks to the dashboard's gRPC Actions service.
//
// GRPCClient keeps the session returned by Login, injects the access token
// into every call and, when the server reports an expired token, rotates the
// session once through RefreshToken and retries. gRPC status codes are mapped
// to ErrUnauthorized and ErrUnavailable.
package client
