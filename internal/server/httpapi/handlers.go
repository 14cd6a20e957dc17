package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/ssrdocs/internal/catalog"
	"github.com/dmitrijs2005/ssrdocs/internal/export"
	"github.com/dmitrijs2005/ssrdocs/internal/reconcile"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

type loginRequest struct {
	Usuario string `json:"usuario"`
	PIN     string `json:"pin"`
}

type loginResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Projects []string `json:"projects"`
	Admin    bool     `json:"admin,omitempty"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := a.users.Login(r.Context(), req.Usuario, req.PIN)
	if err != nil {
		a.logger.Info(r.Context(), "login rejected", "user", req.Usuario, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    res.Token,
		Username: res.Session.Username,
		Projects: res.Session.Projects,
		Admin:    res.Session.Admin,
	})
}

type projectDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (a *API) handleProjects(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	projects := a.progress.AuthorizedProjects(sess)
	out := make([]projectDTO, len(projects))
	for i, p := range projects {
		out[i] = projectDTO{Code: p.Code, Name: p.DisplayName()}
	}
	writeJSON(w, http.StatusOK, out)
}

type recordDTO struct {
	ProjectCode string   `json:"project_code"`
	ProjectName string   `json:"project_name"`
	Completed   int      `json:"completed"`
	Total       int      `json:"total"`
	Percent     float64  `json:"percent"`
	Pending     []string `json:"pending,omitempty"`
}

func toRecordDTO(rec reconcile.Record) recordDTO {
	return recordDTO{
		ProjectCode: rec.ProjectCode,
		ProjectName: rec.ProjectName,
		Completed:   rec.Completed,
		Total:       rec.Total,
		Percent:     rec.Percent,
		Pending:     rec.Pending,
	}
}

func (a *API) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	code := chi.URLParam(r, "code")

	rec, err := a.progress.Progress(r.Context(), sess, code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(*rec))
}

func (a *API) handleBatchProgress(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	recs, err := a.progress.BatchProgress(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]recordDTO, len(recs))
	for i, rec := range recs {
		out[i] = toRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleSummaryExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	recs, err := a.progress.BatchProgress(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="avance_ssr.csv"`)
	if err := export.SummaryCSV(w, recs); err != nil {
		a.logger.Error(r.Context(), "writing summary export", "error", err)
	}
}

func (a *API) handlePendingExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	recs, err := a.progress.BatchProgress(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pendientes_ssr.csv"`)
	if err := export.PendingCSV(w, recs); err != nil {
		a.logger.Error(r.Context(), "writing pending export", "error", err)
	}
}

type fileDTO struct {
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
	ViewLink string    `json:"view_link,omitempty"`
}

func (a *API) handleFiles(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	code := chi.URLParam(r, "code")

	files, err := a.progress.ProjectFiles(r.Context(), sess, code)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "report" {
		a.writeFileReport(w, r, code, files)
		return
	}

	out := make([]fileDTO, len(files))
	for i, f := range files {
		out[i] = fileDTO{Name: f.Name, MimeType: f.MimeType, Size: f.Size, Modified: f.Modified, ViewLink: f.ViewLink}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) writeFileReport(w http.ResponseWriter, r *http.Request, code string, files []storage.File) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="archivos_%s.txt"`, code))
	if err := export.FileListing(w, files); err != nil {
		a.logger.Error(r.Context(), "writing file report", "error", err)
	}
}

func (a *API) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := a.progress.Download(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, body); err != nil {
		a.logger.Error(r.Context(), "streaming file content", "file", id, "error", err)
	}
}

type catalogItemDTO struct {
	Name string `json:"name"`
	Team string `json:"team,omitempty"`
}

type catalogDTO struct {
	Items []catalogItemDTO `json:"items"`
}

func (a *API) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog management requires a database"})
		return
	}

	items, err := a.catalog.Items(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := catalogDTO{Items: make([]catalogItemDTO, len(items))}
	for i, it := range items {
		out.Items[i] = catalogItemDTO{Name: it.Name, Team: it.Team}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleCatalogReplace(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog management requires a database"})
		return
	}

	var req catalogDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	items := make([]catalog.Item, 0, len(req.Items))
	for _, it := range req.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "deliverable name must not be empty"})
			return
		}
		items = append(items, catalog.Item{Name: name, Team: strings.TrimSpace(it.Team)})
	}

	if err := a.catalog.Replace(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
