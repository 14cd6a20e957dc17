// Package cli implements the interactive command-line client. It talks to
// the server over the HTTP API and keeps a local SQLite cache of the last
// fetched completion records for offline review.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/ssrdocs/internal/client/client"
	"github.com/dmitrijs2005/ssrdocs/internal/client/config"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	api      *client.Client
	repos    *client.Repositories
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, c.CachePath)
	if err != nil {
		log.Printf("error initializing cache: %s", err.Error())
		return nil, err
	}

	api := client.New(c.ServerEndpointAddr, c.RequestTimeout)

	return &App{config: c, api: api, repos: repos, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.repos.DB.Close() }()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}
