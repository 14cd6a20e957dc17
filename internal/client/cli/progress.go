package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/ssrdocs/internal/client/client"
	"github.com/dmitrijs2005/ssrdocs/internal/client/models"
)

// Projects lists the session's authorized projects.
func (a *App) Projects(ctx context.Context) error {
	projects, err := a.api.Projects(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}
	for _, p := range projects {
		fmt.Printf("%s\t%s\n", p.Code, p.Name)
	}
	return nil
}

// Progress fetches the completion records. With a project code argument only
// that project is shown; without one, every authorized project is fetched
// and the result is stored in the local cache.
func (a *App) Progress(ctx context.Context, args []string) error {
	if len(args) > 0 {
		rec, err := a.api.ProjectProgress(ctx, args[0])
		if err != nil {
			fmt.Println("Error:", err)
			return err
		}
		printRecords([]client.Record{*rec})
		return nil
	}

	recs, err := a.api.Progress(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}
	printRecords(recs)

	now := time.Now()
	for _, rec := range recs {
		cached := &models.Record{
			ProjectCode: rec.ProjectCode,
			ProjectName: rec.ProjectName,
			Completed:   rec.Completed,
			Total:       rec.Total,
			Percent:     rec.Percent,
			Pending:     strings.Join(rec.Pending, "\n"),
			FetchedAt:   now,
		}
		if err := a.repos.Records.Upsert(ctx, cached); err != nil {
			fmt.Println("Warning: could not cache record:", err)
		}
	}
	return nil
}

// Cached shows the records stored by the last full Progress fetch. Works
// without a server connection.
func (a *App) Cached(ctx context.Context) error {
	cached, err := a.repos.Records.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}
	if len(cached) == 0 {
		fmt.Println("Cache is empty; run 'progress' while online first")
		return nil
	}

	recs := make([]client.Record, len(cached))
	for i, c := range cached {
		recs[i] = client.Record{
			ProjectCode: c.ProjectCode,
			ProjectName: c.ProjectName,
			Completed:   c.Completed,
			Total:       c.Total,
			Percent:     c.Percent,
		}
		if c.Pending != "" {
			recs[i].Pending = strings.Split(c.Pending, "\n")
		}
	}
	printRecords(recs)
	fmt.Printf("(cached %s)\n", cached[0].FetchedAt.Format("2006-01-02 15:04"))
	return nil
}

func printRecords(recs []client.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Código SSR\tNombre Proyecto\tEntregables OK\tTotales\t% Avance")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\n", rec.ProjectCode, rec.ProjectName, rec.Completed, rec.Total, rec.Percent)
	}
	_ = w.Flush()

	for _, rec := range recs {
		for _, p := range rec.Pending {
			fmt.Printf("  %s: pendiente %q\n", rec.ProjectCode, p)
		}
	}
}
