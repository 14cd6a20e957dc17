package models

// Deliverable is one catalog row. Position preserves catalog order, which
// the reconciliation output depends on.
type Deliverable struct {
	ID       string
	Name     string
	Team     string
	Position int
}
