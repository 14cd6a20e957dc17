package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/ssrdocs/internal/catalog"
	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/gate"
	"github.com/dmitrijs2005/ssrdocs/internal/logging"
	"github.com/dmitrijs2005/ssrdocs/internal/project"
	"github.com/dmitrijs2005/ssrdocs/internal/reconcile"
	"github.com/dmitrijs2005/ssrdocs/internal/resolver"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

// CatalogProvider yields the current deliverable catalog. The progress
// service reads it per request so admin catalog edits take effect without a
// restart.
type CatalogProvider interface {
	Items(ctx context.Context) ([]catalog.Item, error)
	Rules(ctx context.Context) (catalog.RuleSet, error)
}

// ProgressService resolves project folders, snapshots their files, and
// reconciles them against the deliverable catalog.
type ProgressService struct {
	store        storage.Store
	res          *resolver.Resolver
	registry     *project.Registry
	catalog      CatalogProvider
	baseFolderID string
	concurrency  int
	logger       logging.Logger
}

// NewProgressService constructs a ProgressService. baseFolderID is the
// folder the project folders are searched under; concurrency bounds both
// the per-project file listings and the batch fan-out.
func NewProgressService(store storage.Store, res *resolver.Resolver, registry *project.Registry, cat CatalogProvider, baseFolderID string, concurrency int, logger logging.Logger) *ProgressService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProgressService{
		store:        store,
		res:          res,
		registry:     registry,
		catalog:      cat,
		baseFolderID: baseFolderID,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// FilesForProject resolves the project folder by its code and returns the
// files in it and in every subfolder. A traversal cap is tolerated: the
// files found below the cap still count, since a partial snapshot only
// understates completion.
func (s *ProgressService) FilesForProject(ctx context.Context, p project.Project) ([]storage.File, error) {
	folder, err := s.res.Resolve(ctx, p.Code, s.baseFolderID)
	if err != nil {
		return nil, fmt.Errorf("resolving folder for %s: %w", p.Code, err)
	}

	nodes, err := s.res.ResolveTree(ctx, folder.ID)
	if err != nil {
		if !errors.Is(err, resolver.ErrTreeLimit) {
			return nil, fmt.Errorf("walking folder tree for %s: %w", p.Code, err)
		}
		s.logger.Warn(ctx, "folder tree truncated at traversal cap", "project", p.Code, "folders", len(nodes))
	}

	folderIDs := make([]string, 0, len(nodes)+1)
	folderIDs = append(folderIDs, folder.ID)
	for _, n := range nodes {
		folderIDs = append(folderIDs, n.Folder.ID)
	}

	results := make([][]storage.File, len(folderIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range folderIDs {
		g.Go(func() error {
			files, err := s.store.ListFiles(gctx, id)
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("listing files for %s: %w", p.Code, err)
	}

	var files []storage.File
	for _, fs := range results {
		files = append(files, fs...)
	}
	return files, nil
}

// Progress computes the completion record for one of the session's projects.
// A session asking for a project outside its list gets common.ErrForbidden.
// An unresolved folder is a normal outcome and degrades to a record with
// every applicable deliverable pending.
func (s *ProgressService) Progress(ctx context.Context, sess *gate.Session, code string) (*reconcile.Record, error) {
	code = project.NormalizeCode(code)
	if !sess.Authorized(code) {
		return nil, common.ErrForbidden
	}

	items, rules, err := s.currentCatalog(ctx)
	if err != nil {
		return nil, err
	}

	p := s.registry.Get(code)
	files, err := s.FilesForProject(ctx, p)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Info(ctx, "project folder not found", "project", code)
		files = nil
	}

	rec := reconcile.Reconcile(p, items, rules, files)
	return &rec, nil
}

// BatchProgress computes one record per authorized project, in the order the
// credential row lists them. Projects degrade independently.
func (s *ProgressService) BatchProgress(ctx context.Context, sess *gate.Session) ([]reconcile.Record, error) {
	items, rules, err := s.currentCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return reconcile.Batch(ctx, s.AuthorizedProjects(sess), items, rules, s, s.concurrency), nil
}

// AuthorizedProjects maps the session's codes through the project registry,
// keeping the credential row order.
func (s *ProgressService) AuthorizedProjects(sess *gate.Session) []project.Project {
	projects := make([]project.Project, len(sess.Projects))
	for i, code := range sess.Projects {
		projects[i] = s.registry.Get(code)
	}
	return projects
}

// ProjectFiles returns the file snapshot for one authorized project. Unlike
// Progress, an unresolved folder surfaces as common.ErrNotFound here, since
// a file listing of nothing is not a useful answer.
func (s *ProgressService) ProjectFiles(ctx context.Context, sess *gate.Session, code string) ([]storage.File, error) {
	code = project.NormalizeCode(code)
	if !sess.Authorized(code) {
		return nil, common.ErrForbidden
	}
	return s.FilesForProject(ctx, s.registry.Get(code))
}

// Download opens a file's content. File IDs are opaque handles obtained
// from an authorized listing, so no extra project check happens here.
func (s *ProgressService) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	return s.store.Download(ctx, fileID)
}

func (s *ProgressService) currentCatalog(ctx context.Context) ([]catalog.Item, catalog.RuleSet, error) {
	items, err := s.catalog.Items(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	rules, err := s.catalog.Rules(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog rules: %w", err)
	}
	return items, rules, nil
}
