package cli

import (
	"context"
	"fmt"
	"os"
)

// Export downloads a CSV report next to the working directory. Without
// arguments the summary is downloaded; "export pending" fetches the pending
// deliverables report instead.
func (a *App) Export(ctx context.Context, args []string) error {
	name := "avance_ssr.csv"
	fetch := a.api.ExportSummary
	if len(args) > 0 && args[0] == "pending" {
		name = "pendientes_ssr.csv"
		fetch = a.api.ExportPending
	}

	data, err := fetch(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if err := os.WriteFile(name, data, 0o644); err != nil {
		fmt.Println("Error:", err)
		return err
	}
	fmt.Println("Saved", name)
	return nil
}
