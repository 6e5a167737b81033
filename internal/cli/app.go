// Package cli is the interactive front end of the Oracle local storage layer.
// It wires the two stores and the services together and drives them from a
// small REPL. Rendering here is deliberately plain; the real UI lives
// elsewhere and talks to the same services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kpetrova/oracle/internal/config"
	"github.com/kpetrova/oracle/internal/docstore"
	"github.com/kpetrova/oracle/internal/flatstore"
	"github.com/kpetrova/oracle/internal/logging"
	"github.com/kpetrova/oracle/internal/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	directory services.DirectoryService
	history   services.HistoryService
	log       logging.Logger

	db     *sql.DB
	docs   *docstore.Store
	reader *bufio.Reader

	// userName caches the active account's name for the prompt. The session
	// pointer in the flat store stays authoritative.
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := flatstore.Open(ctx, filepath.Join(c.DataDir, c.FlatDBFile))
	if err != nil {
		logger.Error(ctx, "error initializing flat store", "err", err)
		return nil, err
	}

	docs, err := docstore.Open(ctx, docstore.Config{
		Dir:    filepath.Join(c.DataDir, c.DocumentDBDir),
		Logger: logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	directory := services.NewDirectoryService(flatstore.NewSQLiteStore(db), logger, c.AuthLatency)
	history := services.NewHistoryService(docs, directory, logger)

	app := &App{
		config:    c,
		directory: directory,
		history:   history,
		log:       logger,
		db:        db,
		docs:      docs,
		reader:    bufio.NewReader(os.Stdin),
	}

	// the session pointer survives restarts; pick it up for the prompt
	if current, err := directory.GetCurrentUser(ctx); err == nil && current != nil {
		app.userName = current.Name
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if err := a.docs.Close(); err != nil {
		a.log.Error(context.Background(), "error closing document store", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "error closing flat store", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}
