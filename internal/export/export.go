// Package export renders completion records and file listings into the
// formats handed to the presentation layer: CSV tables and a fixed-width
// text report. Everything here is a pure projection of already-computed
// data; no reconciliation happens at export time.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/ssrdocs/internal/reconcile"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// SummaryCSV writes one row per project with aggregate counts and percent.
func SummaryCSV(w io.Writer, records []reconcile.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Código SSR", "Nombre Proyecto", "Entregables OK", "Totales", "% Avance"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ProjectCode,
			r.ProjectName,
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Total),
			strconv.FormatFloat(r.Percent, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// PendingCSV writes one row per (project, pending deliverable) pair, in
// record order and within each record in catalog order.
func PendingCSV(w io.Writer, records []reconcile.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Código SSR", "Nombre Proyecto", "Entregable Pendiente"}); err != nil {
		return err
	}
	for _, r := range records {
		for _, pending := range r.Pending {
			if err := cw.Write([]string{r.ProjectCode, r.ProjectName, pending}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

const fileTimeLayout = "2006-01-02 15:04"

// FileListing writes a fixed-width text table of the files in a folder:
// name, size, last modification. Missing metadata renders as "-".
func FileListing(w io.Writer, files []storage.File) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "Archivo\tTamaño\tÚltima modificación"); err != nil {
		return err
	}
	for _, f := range files {
		size := "-"
		if f.Size > 0 {
			size = humanize.IBytes(uint64(f.Size))
		}
		modified := "-"
		if !f.Modified.IsZero() {
			modified = f.Modified.Format(fileTimeLayout)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, size, modified); err != nil {
			return err
		}
	}

	return tw.Flush()
}
