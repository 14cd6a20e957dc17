// Package storagetest provides an in-memory storage.Store used by tests
// across the project.
package storagetest

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// MemoryStore holds a folder tree and per-folder file lists in memory.
// The zero value is empty and usable.
type MemoryStore struct {
	folders map[string][]storage.Folder // parentID -> children
	files   map[string][]storage.File   // folderID -> files
	content map[string][]byte           // fileID -> bytes

	// Err, when set, is returned by every operation. Used to simulate an
	// unavailable collaborator.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		folders: map[string][]storage.Folder{},
		files:   map[string][]storage.File{},
		content: map[string][]byte{},
	}
}

// AddFolder registers a child folder under parentID and returns its handle.
func (m *MemoryStore) AddFolder(parentID, id, name string) storage.Folder {
	f := storage.Folder{ID: id, Name: name, ParentID: parentID}
	m.folders[parentID] = append(m.folders[parentID], f)
	return f
}

// AddFile registers a file under folderID.
func (m *MemoryStore) AddFile(folderID string, f storage.File, content []byte) {
	m.files[folderID] = append(m.files[folderID], f)
	if content != nil {
		m.content[f.ID] = content
	}
}

func (m *MemoryStore) SearchChildren(ctx context.Context, parentID, nameFilter string) ([]storage.Folder, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	filter := strings.ToLower(nameFilter)
	var out []storage.Folder
	for _, f := range m.folders[parentID] {
		if filter == "" || strings.Contains(strings.ToLower(f.Name), filter) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListFolders(ctx context.Context, parentID string) ([]storage.Folder, error) {
	return m.SearchChildren(ctx, parentID, "")
}

func (m *MemoryStore) ListFiles(ctx context.Context, parentID string) ([]storage.File, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]storage.File(nil), m.files[parentID]...), nil
}

func (m *MemoryStore) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.content[fileID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

var _ storage.Store = (*MemoryStore)(nil)
