package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/storage/storagetest"
)

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     bool
	}{
		{"SSR042 Los Alamos", "SSR042", true},
		{"ssr042 los alamos", "SSR042", true},
		{"SSR042 Los Alamos", "ssr099", false},
		{"Planos", "plan", true},
		{"anything", "", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NameMatches(tc.name, tc.fragment), "%q vs %q", tc.name, tc.fragment)
	}
}

func TestResolve_PicksLexicographicallySmallest(t *testing.T) {
	st := storagetest.NewMemoryStore()
	st.AddFolder("base", "f2", "SSR042 Zona Sur")
	st.AddFolder("base", "f1", "SSR042 Los Alamos")

	r := New(st)
	got, err := r.Resolve(context.Background(), "SSR042", "base")
	require.NoError(t, err)
	assert.Equal(t, "SSR042 Los Alamos", got.Name)
}

func TestResolve_NotFoundIsRecoverableSentinel(t *testing.T) {
	st := storagetest.NewMemoryStore()
	st.AddFolder("base", "f1", "SSR042 Los Alamos")

	r := New(st)
	_, err := r.Resolve(context.Background(), "SSR099", "base")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestResolve_PropagatesStoreError(t *testing.T) {
	st := storagetest.NewMemoryStore()
	st.Err = common.ErrUnavailable

	r := New(st)
	_, err := r.Resolve(context.Background(), "SSR042", "base")
	assert.True(t, errors.Is(err, common.ErrUnavailable))
}

func buildTree(st *storagetest.MemoryStore) {
	// root -> a, b; a -> a1, a2; b -> b1; a1 -> deep
	st.AddFolder("root", "a", "Planos")
	st.AddFolder("root", "b", "Memorias")
	st.AddFolder("a", "a1", "Electricos")
	st.AddFolder("a", "a2", "Sanitarios")
	st.AddFolder("b", "b1", "Anexos")
	st.AddFolder("a1", "deep", "Revisiones")
}

func TestResolveTree_BreadthFirstDeterministicOrder(t *testing.T) {
	st := storagetest.NewMemoryStore()
	buildTree(st)

	r := New(st)
	nodes, err := r.ResolveTree(context.Background(), "root")
	require.NoError(t, err)

	var names []string
	for _, n := range nodes {
		names = append(names, n.Folder.Name)
	}
	assert.Equal(t, []string{"Planos", "Memorias", "Electricos", "Sanitarios", "Anexos", "Revisiones"}, names)
	assert.Equal(t, 1, nodes[0].Depth)
	assert.Equal(t, 3, nodes[5].Depth)
}

func TestResolveTree_DepthCap(t *testing.T) {
	st := storagetest.NewMemoryStore()
	buildTree(st)

	r := New(st, WithMaxDepth(2))
	nodes, err := r.ResolveTree(context.Background(), "root")
	assert.True(t, errors.Is(err, ErrTreeLimit))
	assert.Len(t, nodes, 5, "depth-3 folder must be excluded")
}

func TestResolveTree_NodeCap(t *testing.T) {
	st := storagetest.NewMemoryStore()
	buildTree(st)

	r := New(st, WithMaxNodes(3))
	nodes, err := r.ResolveTree(context.Background(), "root")
	assert.True(t, errors.Is(err, ErrTreeLimit))
	assert.Len(t, nodes, 3)
}

func TestResolveTree_CycleDoesNotLoop(t *testing.T) {
	st := storagetest.NewMemoryStore()
	st.AddFolder("root", "a", "A")
	st.AddFolder("a", "root", "Root again") // cycle back to root id

	r := New(st)
	nodes, err := r.ResolveTree(context.Background(), "root")
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestResolveTree_MatchesSequentialUnderConcurrency(t *testing.T) {
	st := storagetest.NewMemoryStore()
	buildTree(st)

	seq, err := New(st, WithConcurrency(1)).ResolveTree(context.Background(), "root")
	require.NoError(t, err)
	par, err := New(st, WithConcurrency(8)).ResolveTree(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}
