package config

import "os"

// parseEnv reads the secrets that are conventionally injected through the
// environment rather than files or flags. Empty variables are ignored.
func parseEnv(config *Config) {
	setString(&config.DatabaseDSN, os.Getenv("DATABASE_URL"))
	setString(&config.SecretKey, os.Getenv("AUTH_SECRET"))
	setString(&config.ResendAPIKey, os.Getenv("RESEND_API_KEY"))
}
