// Package project defines the project identity shared by the credential
// directory, the folder resolver, and the deliverable catalog. The code is
// the join key between all three, so a single normalization rule lives here.
package project

import "strings"

// Project is a unit of work tracked in the document store, e.g. "SSR042".
type Project struct {
	Code string
	Name string

	// Features flags the components the project actually has, keyed by
	// feature name (e.g. "ptap" for a treatment plant). Deliverables tied
	// to an absent feature are inapplicable to the project.
	Features map[string]bool
}

// Has reports whether the project has the named component.
func (p Project) Has(feature string) bool {
	return p.Features[feature]
}

// DisplayName returns the human label, falling back to the code.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Code
}

// NormalizeCode trims surrounding whitespace from a project code. Codes are
// compared case-sensitively, so trimming is the only normalization, and it
// must be applied to every source that produces codes.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
