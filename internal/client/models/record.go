// Package models defines the row types the CLI caches locally.
package models

import "time"

// Record is one cached completion record, a snapshot of the server's answer
// at FetchedAt. Pending holds the pending deliverable names joined by
// newlines, which keeps the schema flat.
type Record struct {
	ProjectCode string
	ProjectName string
	Completed   int
	Total       int
	Percent     float64
	Pending     string
	FetchedAt   time.Time
}
