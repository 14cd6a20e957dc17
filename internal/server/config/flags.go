package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ssrdocs/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-k string   credentials CSV path
//	-y string   deliverable catalog path (CSV or YAML)
//	-j string   project registry YAML path
//	-m string   storage backend ("drive" or "s3")
//	-f string   base folder ID the project folders live under
//	-o string   Drive OAuth2 access token
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-y", "-j", "-m", "-f", "-o", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.CredentialsFile, "k", config.CredentialsFile, "credentials CSV file")
	fs.StringVar(&config.CatalogFile, "y", config.CatalogFile, "deliverable catalog file")
	fs.StringVar(&config.ProjectsFile, "j", config.ProjectsFile, "project registry YAML file")
	fs.StringVar(&config.StorageBackend, "m", config.StorageBackend, "storage backend (drive or s3)")
	fs.StringVar(&config.BaseFolderID, "f", config.BaseFolderID, "base folder ID")
	fs.StringVar(&config.DriveAccessToken, "o", config.DriveAccessToken, "Drive access token")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
