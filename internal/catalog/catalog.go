// Package catalog holds the ordered list of expected deliverables and the
// applicability rules deciding which of them a given project owes.
package catalog

import (
	"strings"

	"github.com/dmitrijs2005/ssrdocs/internal/project"
)

// Item is one expected deliverable. Name is the (trimmed) canonical label
// matched against filenames; Team optionally groups items by the team
// responsible for them.
type Item struct {
	Name string `yaml:"name"`
	Team string `yaml:"team,omitempty"`
}

// Rule excludes items from projects lacking a component: an item whose name
// contains Keyword (case-insensitive) applies only to projects that have
// Feature. Rules form a declarative table so the exclusion set stays
// auditable and testable apart from the matching engine.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Feature string `yaml:"feature"`
}

// RuleSet is an ordered list of exclusion rules.
type RuleSet []Rule

// DefaultRules covers the treatment-plant exclusions used by the SSR
// catalog: PTAP-related deliverables are owed only by projects that include
// a treatment plant.
var DefaultRules = RuleSet{
	{Keyword: "ptap", Feature: "ptap"},
	{Keyword: "tratamiento", Feature: "ptap"},
}

// Applies reports whether the item is applicable to the project under this
// rule set. An item is inapplicable when any rule keyword occurs in its name
// and the project lacks the rule's feature.
func (rs RuleSet) Applies(item Item, p project.Project) bool {
	name := strings.ToLower(item.Name)
	for _, r := range rs {
		if strings.Contains(name, strings.ToLower(r.Keyword)) && !p.Has(r.Feature) {
			return false
		}
	}
	return true
}

// Filter returns the items applicable to the project, preserving catalog
// order. The same filtering runs for single-project and batch computations.
func Filter(items []Item, p project.Project, rules RuleSet) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if rules.Applies(it, p) {
			out = append(out, it)
		}
	}
	return out
}

// Catalog pairs the deliverable list with the rule set governing it.
type Catalog struct {
	Items []Item  `yaml:"items"`
	Rules RuleSet `yaml:"rules,omitempty"`
}
