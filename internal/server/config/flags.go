package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      HTTP bind address (e.g., ":3000")
//	-grpc string   gRPC bind address (e.g., ":50051")
//	-d string      PostgreSQL DSN
//	-s string      JWT HMAC secret key
//	-t int         access token validity, minutes
//	-r int         refresh token validity, minutes
//	-u string      S3 root user
//	-p string      S3 root password
//	-b string      S3 bucket name
//	-g string      S3 region
//	-e string      S3 base endpoint
//	-k string      Resend API key
//	-l string      log level
//	-secure        mark session cookies Secure
//
// os.Args is filtered through flagx.FilterArgs first so the -c/-config flag
// and test runner flags do not collide with this set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-grpc", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-k", "-l", "-secure",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.ResendAPIKey, "k", config.ResendAPIKey, "Resend API key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.SecureCookies, "secure", config.SecureCookies, "secure session cookies")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
