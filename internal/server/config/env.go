package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a .env
// file first when one is present in the working directory. Variables already
// set in the environment take precedence over the file, which is godotenv's
// default behavior.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("SSRDOCS_ADDRESS", &config.EndpointAddr)
	setString("SSRDOCS_DATABASE_DSN", &config.DatabaseDSN)
	setString("SSRDOCS_SECRET_KEY", &config.SecretKey)
	setString("SSRDOCS_CREDENTIALS_FILE", &config.CredentialsFile)
	setString("SSRDOCS_CATALOG_FILE", &config.CatalogFile)
	setString("SSRDOCS_PROJECTS_FILE", &config.ProjectsFile)
	setString("SSRDOCS_STORAGE_BACKEND", &config.StorageBackend)
	setString("SSRDOCS_BASE_FOLDER_ID", &config.BaseFolderID)
	setString("SSRDOCS_DRIVE_ACCESS_TOKEN", &config.DriveAccessToken)
	setString("SSRDOCS_S3_ROOT_USER", &config.S3RootUser)
	setString("SSRDOCS_S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("SSRDOCS_S3_BUCKET", &config.S3Bucket)
	setString("SSRDOCS_S3_REGION", &config.S3Region)
	setString("SSRDOCS_S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
}
