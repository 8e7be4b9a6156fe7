package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/invoicedash/internal/flagx"
	"github.com/dmitrijs2005/invoicedash/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// either "15m"-style strings or integer nanoseconds.
type FileConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	ResendAPIKey                 string         `json:"resend_api_key" yaml:"resend_api_key"`
	EmailFrom                    string         `json:"email_from" yaml:"email_from"`
	EmailTo                      string         `json:"email_to" yaml:"email_to"`
	EmailFirstName               string         `json:"email_first_name" yaml:"email_first_name"`
	GitHubLogin                  string         `json:"github_login" yaml:"github_login"`
	SecureCookies                *bool          `json:"secure_cookies" yaml:"secure_cookies"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays values from the file named by -c/-config. The format
// is YAML for .yaml/.yml files and JSON otherwise. Only keys present in the
// file replace what is already in config. A missing or malformed file panics,
// mirroring flag parsing.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := readFile(config, path); err != nil {
		panic(err)
	}
}

func readFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return err
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.ResendAPIKey, c.ResendAPIKey)
	setString(&config.EmailFrom, c.EmailFrom)
	setString(&config.EmailTo, c.EmailTo)
	setString(&config.EmailFirstName, c.EmailFirstName)
	setString(&config.GitHubLogin, c.GitHubLogin)
	if c.SecureCookies != nil {
		config.SecureCookies = *c.SecureCookies
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
