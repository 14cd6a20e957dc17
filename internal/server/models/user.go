// Package models defines the server-side row types backing the credential
// directory and deliverable catalog when they live in Postgres instead of a
// workbook export.
package models

// User is one credential directory row. AuthorizedProjects keeps the raw
// comma-separated code list exactly as the source column stores it; parsing
// and normalization happen in the creds package.
type User struct {
	ID                 string
	Username           string
	PIN                string
	AuthorizedProjects string
	Admin              bool
}
