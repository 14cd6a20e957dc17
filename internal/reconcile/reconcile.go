// Package reconcile matches the files found in a project's folder against
// the deliverable catalog and aggregates the result into a completion
// record.
//
// The matching rule is deliberately loose: a deliverable is satisfied when
// any filename contains its name, both lower-cased. Catalog entries are
// short labels while filenames are free-form ("PLANO_GENERAL_v2.pdf" must
// satisfy "Plano General"), so the rule trades the false negatives of an
// exact match for possible false positives on ambiguous substrings. That
// trade-off is part of the contract; do not tighten it here.
package reconcile

import (
	"context"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/ssrdocs/internal/catalog"
	"github.com/dmitrijs2005/ssrdocs/internal/project"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// normalizeForMatch lower-cases a label and folds the separator characters
// filenames commonly use ('_', '-') into spaces, so "PLANO_GENERAL_v2.pdf"
// contains "plano general".
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// Match is the deliverable matching policy: case-insensitive,
// separator-folding substring containment of the deliverable name in the
// filename.
func Match(filename, deliverable string) bool {
	return strings.Contains(normalizeForMatch(filename), normalizeForMatch(deliverable))
}

// Record is the completion state of one project.
//
// Invariants: Completed+len(Pending) == Total, Percent is in [0,100] and is
// 0.0 when Total is 0. Pending preserves catalog order.
type Record struct {
	ProjectCode string
	ProjectName string
	Completed   int
	Total       int
	Percent     float64
	Pending     []string
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Reconcile computes the completion record for a single project. Items are
// first filtered by applicability, so inapplicable deliverables count in
// neither the numerator nor the denominator. A nil file list (unresolved
// folder, empty folder) yields zero completions with every applicable item
// pending.
func Reconcile(p project.Project, items []catalog.Item, rules catalog.RuleSet, files []storage.File) Record {
	applicable := catalog.Filter(items, p, rules)

	rec := Record{
		ProjectCode: p.Code,
		ProjectName: p.DisplayName(),
		Total:       len(applicable),
	}

	for _, it := range applicable {
		satisfied := false
		for _, f := range files {
			if Match(f.Name, it.Name) {
				satisfied = true
				break
			}
		}
		if satisfied {
			rec.Completed++
		} else {
			rec.Pending = append(rec.Pending, it.Name)
		}
	}

	if rec.Total > 0 {
		rec.Percent = round1(float64(rec.Completed) / float64(rec.Total) * 100)
	}
	return rec
}

// FileSource fetches the file snapshot for a project, typically by
// resolving its folder and listing it. Returning an error marks the project
// as unresolved; the error kind does not matter to the engine.
type FileSource interface {
	FilesForProject(ctx context.Context, p project.Project) ([]storage.File, error)
}

// Batch computes one record per project, in the caller's project order.
// Projects are processed independently: a missing folder or unavailable
// collaborator for one project degrades that project to zero completions
// and never aborts the rest. Fetches run concurrently up to the given
// limit; the result is identical to sequential invocation.
func Batch(ctx context.Context, projects []project.Project, items []catalog.Item, rules catalog.RuleSet, src FileSource, concurrency int) []Record {
	if concurrency < 1 {
		concurrency = 1
	}

	records := make([]Record, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range projects {
		g.Go(func() error {
			files, err := src.FilesForProject(gctx, p)
			if err != nil {
				files = nil
			}
			records[i] = Reconcile(p, items, rules, files)
			return nil
		})
	}
	_ = g.Wait()

	return records
}
