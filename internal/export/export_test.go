package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ssrdocs/internal/reconcile"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

var testRecords = []reconcile.Record{
	{ProjectCode: "SSR042", ProjectName: "Los Alamos", Completed: 2, Total: 2, Percent: 100.0},
	{ProjectCode: "SSR099", ProjectName: "El Roble", Completed: 0, Total: 1, Percent: 0.0,
		Pending: []string{"Plano General"}},
}

func TestSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SummaryCSV(&buf, testRecords))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Código SSR,Nombre Proyecto,Entregables OK,Totales,% Avance", lines[0])
	assert.Equal(t, "SSR042,Los Alamos,2,2,100.0", lines[1])
	assert.Equal(t, "SSR099,El Roble,0,1,0.0", lines[2])
}

func TestPendingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PendingCSV(&buf, testRecords))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "fully complete projects contribute no rows")
	assert.Equal(t, "Código SSR,Nombre Proyecto,Entregable Pendiente", lines[0])
	assert.Equal(t, "SSR099,El Roble,Plano General", lines[1])
}

func TestFileListing(t *testing.T) {
	files := []storage.File{
		{Name: "plano_general.pdf", Size: 2048, Modified: time.Date(2025, 2, 10, 12, 30, 0, 0, time.UTC)},
		{Name: "memoria.docx"},
	}

	var buf bytes.Buffer
	require.NoError(t, FileListing(&buf, files))

	out := buf.String()
	assert.Contains(t, out, "Archivo")
	assert.Contains(t, out, "plano_general.pdf")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "2025-02-10 12:30")
	assert.Contains(t, out, "memoria.docx")
	assert.Contains(t, out, "-")
}
