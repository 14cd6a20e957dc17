// Package storage defines the read-only contract the platform needs from a
// remote hierarchical document store, plus the snapshot types it returns.
// Implementations live in the drive and s3 subpackages.
package storage

import (
	"context"
	"io"
	"time"
)

// Folder is an opaque handle to a remote folder. Folders form a tree rooted
// at a configured base folder.
type Folder struct {
	ID       string
	Name     string
	ParentID string
}

// File is an immutable snapshot of a non-folder entry taken at query time.
// Size and Modified are optional: zero values mean the backend did not
// report them.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
	Modified time.Time
	ViewLink string
}

// Store is the storage collaborator. All operations are read-only and must
// exclude trashed entries. Retry/backoff policy belongs to implementations,
// not to callers.
type Store interface {
	// SearchChildren returns the direct child folders of parentID whose
	// name contains nameFilter. An empty filter returns all child folders.
	SearchChildren(ctx context.Context, parentID, nameFilter string) ([]Folder, error)

	// ListFolders returns all direct child folders of parentID.
	ListFolders(ctx context.Context, parentID string) ([]Folder, error)

	// ListFiles returns the non-folder entries directly under parentID,
	// in backend order. Names are returned verbatim: no case or accent
	// normalization is applied here.
	ListFiles(ctx context.Context, parentID string) ([]File, error)

	// Download opens the file content for reading. The caller closes it.
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
}
