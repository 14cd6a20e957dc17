package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ssrdocs/internal/export"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// Files prints the file snapshot of one project as a fixed-width listing.
func (a *App) Files(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: files <project code>")
		return nil
	}

	files, err := a.api.Files(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	listing := make([]storage.File, len(files))
	for i, f := range files {
		listing[i] = storage.File{
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
			Modified: f.Modified,
			ViewLink: f.ViewLink,
		}
	}
	return export.FileListing(os.Stdout, listing)
}
