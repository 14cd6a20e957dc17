package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ssrdocs/internal/flagx"
	"github.com/dmitrijs2005/ssrdocs/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "12h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	CredentialsFile       string         `json:"credentials_file"`
	CatalogFile           string         `json:"catalog_file"`
	ProjectsFile          string         `json:"projects_file"`
	StorageBackend        string         `json:"storage_backend"`
	BaseFolderID          string         `json:"base_folder_id"`
	DriveAccessToken      string         `json:"drive_access_token"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	WalkMaxDepth          int            `json:"walk_max_depth"`
	WalkMaxNodes          int            `json:"walk_max_nodes"`
	WalkConcurrency       int            `json:"walk_concurrency"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// and panics on failure, since a misconfigured server must not start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.CredentialsFile = c.CredentialsFile
	config.CatalogFile = c.CatalogFile
	config.ProjectsFile = c.ProjectsFile
	config.StorageBackend = c.StorageBackend
	config.BaseFolderID = c.BaseFolderID
	config.DriveAccessToken = c.DriveAccessToken
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.WalkMaxDepth = c.WalkMaxDepth
	config.WalkMaxNodes = c.WalkMaxNodes
	config.WalkConcurrency = c.WalkConcurrency
}
