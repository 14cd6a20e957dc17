// Package config handles configuration for the server component,
// including defaults, an optional .env overlay, JSON overlay, and
// command-line flags.
package config

import "time"

// Storage backend selectors for Config.StorageBackend.
const (
	BackendDrive = "drive"
	BackendS3    = "s3"
)

// Config holds runtime settings for the ssrdocs server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty disables the database and the
//     server falls back to the CSV credential and catalog files.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: session token lifetime.
//   - CredentialsFile / CatalogFile / ProjectsFile: CSV and YAML inputs.
//   - StorageBackend: "drive" or "s3".
//   - BaseFolderID: folder under which project folders are searched.
//   - DriveAccessToken: OAuth2 bearer token for the Drive backend.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - WalkMaxDepth / WalkMaxNodes / WalkConcurrency: folder tree traversal caps.
type Config struct {
	EndpointAddr          string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	CredentialsFile       string
	CatalogFile           string
	ProjectsFile          string
	StorageBackend        string
	BaseFolderID          string
	DriveAccessToken      string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	WalkMaxDepth          int
	WalkMaxNodes          int
	WalkConcurrency       int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 12 * time.Hour
	c.CredentialsFile = "credenciales.csv"
	c.CatalogFile = "entregables.csv"
	c.ProjectsFile = ""
	c.StorageBackend = BackendS3
	c.BaseFolderID = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "ssrdocs"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.WalkMaxDepth = 10
	c.WalkMaxNodes = 2000
	c.WalkConcurrency = 4
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional .env file, an optional JSON file, and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
