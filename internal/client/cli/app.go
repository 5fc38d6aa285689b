package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/docsession/internal/client/client"
	"github.com/dmitrijs2005/docsession/internal/client/config"
	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docsession/internal/client/services"
	"github.com/dmitrijs2005/docsession/internal/filex"
	"github.com/dmitrijs2005/docsession/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// sessionStore is the part of metadata.SessionStore the App needs.
type sessionStore interface {
	SaveSession(ctx context.Context, state models.SessionState) error
	LoadSession(ctx context.Context) (models.SessionState, bool, error)
	ClearSession(ctx context.Context) error
}

type App struct {
	config   *config.Config
	session  services.SessionService
	sessions sessionStore
	db       *sql.DB
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	modeMu sync.Mutex
	mode   Mode
}

// NewApp opens the local state database and builds the store client and
// session service described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	if err := filex.EnsureParentDir(c.StatePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StatePath, "error", err)
		return nil, err
	}

	store, err := client.NewHTTPStore(c.Endpoint, c.Database, c.Collection, c.APIKey,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "store")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		session:  services.NewSession(store, log),
		sessions: metadata.NewSessionStore(db),
		db:       db,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run resumes any saved session, starts the online watcher and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	printlnFn("Welcome to docsession (type 'help' for commands)")

	a.bindPersistence(ctx)
	if err := a.restoreSession(ctx); err != nil {
		a.log.Warn(ctx, "saved session ignored", "error", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	if err := a.session.Close(); err != nil {
		a.log.Warn(context.Background(), "close store", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close local database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("switched to %s mode", mode))
	}
}

// checkOnline pings the store once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.session.Ping(ctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher checks the store right away and then every
// interval until ctx is done. A non-positive interval disables the watcher.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	var parts []string
	if u := a.session.CurrentUser(); u != nil {
		parts = append(parts, u.Name())
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
