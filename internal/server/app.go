// Package server initializes and runs the application server. It wires the
// storage backend, the credential and catalog sources, and the HTTP API,
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/ssrdocs/internal/catalog"
	"github.com/dmitrijs2005/ssrdocs/internal/creds"
	"github.com/dmitrijs2005/ssrdocs/internal/gate"
	"github.com/dmitrijs2005/ssrdocs/internal/logging"
	"github.com/dmitrijs2005/ssrdocs/internal/project"
	"github.com/dmitrijs2005/ssrdocs/internal/resolver"
	"github.com/dmitrijs2005/ssrdocs/internal/server/config"
	"github.com/dmitrijs2005/ssrdocs/internal/server/httpapi"
	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ssrdocs/internal/server/services"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
	"github.com/dmitrijs2005/ssrdocs/internal/storage/drive"
	"github.com/dmitrijs2005/ssrdocs/internal/storage/s3"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.API
	repos  repomanager.RepositoryManager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	registry, err := project.LoadRegistryFile(cfg.ProjectsFile)
	if err != nil {
		return nil, fmt.Errorf("project registry error: %w", err)
	}

	res := resolver.New(store,
		resolver.WithMaxDepth(cfg.WalkMaxDepth),
		resolver.WithMaxNodes(cfg.WalkMaxNodes),
		resolver.WithConcurrency(cfg.WalkConcurrency),
	)

	var (
		source     gate.CredentialSource
		catProv    services.CatalogProvider
		catalogSvc *services.CatalogService
		repos      repomanager.RepositoryManager
	)

	if cfg.DatabaseDSN != "" {
		repos, err = repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		source = services.NewPostgresCredentialSource(repos)
		catalogSvc = services.NewCatalogService(repos, nil)
		catProv = catalogSvc

		if cfg.CredentialsFile != "" {
			if err := seedUsers(ctx, repos, cfg.CredentialsFile); err != nil {
				logger.Warn(ctx, "seeding users from credentials file failed", "error", err)
			}
		}
	} else {
		dirSource, err := loadDirectory(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		source = dirSource

		static, err := loadStaticCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		catProv = static
	}

	userSvc := services.NewUserService(source, cfg)
	progressSvc := services.NewProgressService(store, res, registry, catProv, cfg.BaseFolderID, cfg.WalkConcurrency, logger)

	api := httpapi.New(userSvc, progressSvc, catalogSvc, logger)

	return &App{config: cfg, logger: logger, api: api, repos: repos}, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendDrive:
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.DriveAccessToken})
		return drive.NewClient(ts), nil
	case config.BackendS3:
		return s3.New(ctx, s3.Options{
			User:         cfg.S3RootUser,
			Password:     cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// seedUsers loads the credentials CSV into the users table so a workbook
// export can bootstrap a fresh database. Existing rows are replaced.
func seedUsers(ctx context.Context, repos repomanager.RepositoryManager, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening credentials file: %w", err)
	}
	defer f.Close()

	rows, err := creds.LoadCSV(f)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	for _, u := range rows {
		row := &models.User{
			ID:                 uuid.NewString(),
			Username:           creds.NormalizeUsername(u.Username),
			PIN:                u.PIN,
			AuthorizedProjects: strings.Join(u.Projects, ","),
			Admin:              u.Admin,
		}
		if err := repos.Users().Upsert(ctx, row); err != nil {
			return fmt.Errorf("seeding user %s: %w", row.Username, err)
		}
	}
	return nil
}

func loadDirectory(path string) (gate.DirectorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return gate.DirectorySource{}, fmt.Errorf("opening credentials file: %w", err)
	}
	defer f.Close()

	users, err := creds.LoadCSV(f)
	if err != nil {
		return gate.DirectorySource{}, fmt.Errorf("loading credentials: %w", err)
	}
	return gate.DirectorySource{Dir: creds.NewDirectory(users)}, nil
}

func loadStaticCatalog(path string) (*services.StaticCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		c, err := catalog.LoadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		return services.NewStaticCatalog(c.Items, c.Rules), nil
	}

	items, err := catalog.LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return services.NewStaticCatalog(items, nil), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	if app.repos != nil {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	app.logger.Info(ctx, "App stopped")
}
