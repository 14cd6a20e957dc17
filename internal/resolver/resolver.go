// Package resolver locates remote folders by name and enumerates folder
// trees. Matching is substring containment, which is the policy the document
// store was organized around: project folders carry the project code plus a
// free-form label ("SSR042 Los Alamos").
package resolver

import (
	"context"
	"errors"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// ErrTreeLimit is returned by ResolveTree when the traversal hits its depth
// or node cap. The nodes collected up to that point are still returned.
var ErrTreeLimit = errors.New("folder tree limit exceeded")

const (
	defaultMaxDepth    = 10
	defaultMaxNodes    = 2000
	defaultConcurrency = 4
)

// NameMatches is the folder matching policy: case-insensitive substring
// containment of fragment in name. Kept as a named function so the policy is
// testable and visible, not an inline check.
func NameMatches(name, fragment string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}

// Resolver wraps a storage.Store with name-based folder lookup.
type Resolver struct {
	store       storage.Store
	maxDepth    int
	maxNodes    int
	concurrency int
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithMaxDepth caps ResolveTree recursion depth.
func WithMaxDepth(n int) Option { return func(r *Resolver) { r.maxDepth = n } }

// WithMaxNodes caps the total number of folders ResolveTree visits.
func WithMaxNodes(n int) Option { return func(r *Resolver) { r.maxNodes = n } }

// WithConcurrency sets how many subfolders are listed in parallel per level.
func WithConcurrency(n int) Option { return func(r *Resolver) { r.concurrency = n } }

func New(store storage.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:       store,
		maxDepth:    defaultMaxDepth,
		maxNodes:    defaultMaxNodes,
		concurrency: defaultConcurrency,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve finds a direct child of parentID whose name contains fragment.
// When several children match, the one with the lexicographically smallest
// name wins (ties on name fall back to ID), so the result does not depend on
// backend listing order. Returns common.ErrNotFound when nothing matches;
// callers treat that as a normal, recoverable outcome.
func (r *Resolver) Resolve(ctx context.Context, fragment, parentID string) (storage.Folder, error) {
	children, err := r.store.SearchChildren(ctx, parentID, fragment)
	if err != nil {
		return storage.Folder{}, err
	}

	matches := children[:0:0]
	for _, c := range children {
		// backends may filter more loosely (or not at all), so re-check
		if NameMatches(c.Name, fragment) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return storage.Folder{}, common.ErrNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})
	return matches[0], nil
}

// Node is a folder discovered by ResolveTree together with its depth below
// the root (direct children are depth 1).
type Node struct {
	Folder storage.Folder
	Depth  int
}

// ResolveTree enumerates all folders below rootID breadth-first, using an
// explicit worklist instead of recursion. Each level's subfolders are listed
// concurrently (the queries are independent and read-only) but the returned
// order is deterministic: level by level, within a level in parent order.
// Already-visited IDs are skipped, so a cyclic store cannot loop the walk.
// When the depth or node cap is hit, the nodes found so far are returned
// together with ErrTreeLimit.
func (r *Resolver) ResolveTree(ctx context.Context, rootID string) ([]Node, error) {
	var nodes []Node
	visited := map[string]bool{rootID: true}

	level := []string{rootID}
	for depth := 1; len(level) > 0; depth++ {
		if depth > r.maxDepth {
			return nodes, ErrTreeLimit
		}

		results := make([][]storage.Folder, len(level))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, parentID := range level {
			g.Go(func() error {
				children, err := r.store.ListFolders(gctx, parentID)
				if err != nil {
					return err
				}
				results[i] = children
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nodes, err
		}

		var next []string
		for _, children := range results {
			for _, c := range children {
				if visited[c.ID] {
					continue
				}
				visited[c.ID] = true
				if len(nodes) >= r.maxNodes {
					return nodes, ErrTreeLimit
				}
				nodes = append(nodes, Node{Folder: c, Depth: depth})
				next = append(next, c.ID)
			}
		}
		level = next
	}

	return nodes, nil
}
