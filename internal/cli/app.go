// Package cli implements the interactive Journly vault REPL.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/journly/internal/common"
	"github.com/dmitrijs2005/journly/internal/config"
	"github.com/dmitrijs2005/journly/internal/logging"
	"github.com/dmitrijs2005/journly/internal/prefs"
	"github.com/dmitrijs2005/journly/internal/repositories/entries"
	"github.com/dmitrijs2005/journly/internal/repositories/stories"
	"github.com/dmitrijs2005/journly/internal/storage"
	"github.com/dmitrijs2005/journly/internal/sync"
	"github.com/dmitrijs2005/journly/internal/vault"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	storage storage.Storage
	prefs   *prefs.Repository
	session *vault.Session
	locker  *vault.AutoLocker
	entries *entries.Repository
	stories *stories.Repository
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	st := storage.NewSQLiteStorage(db)
	pr := prefs.NewRepository(db)
	session := vault.NewSession(pr, log)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		storage: st,
		prefs:   pr,
		session: session,
		locker:  vault.NewAutoLocker(c.AutoLockTimeout, session.Lock),
		entries: entries.NewRepository(st, session),
		stories: stories.NewRepository(st, session),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) unlocked() bool {
	return a.session.Unlocked()
}

func (a *App) getStatus() string {
	if a.session.Unlocked() {
		return "unlocked"
	}
	return "locked"
}

// buildTransport selects the configured backup transport.
func (a *App) buildTransport(ctx context.Context) (sync.Transport, error) {
	switch a.config.SyncTransport {
	case config.TransportS3:
		client, err := sync.NewS3Client(ctx, a.config.S3Region, a.config.S3Endpoint,
			a.config.S3AccessKey, a.config.S3SecretKey)
		if err != nil {
			return nil, err
		}
		return sync.NewS3Transport(client, a.config.S3Bucket), nil
	case config.TransportDrive:
		// A token with a passed exp claim is refused up front instead of
		// burning a request on a guaranteed 401. Opaque tokens go through.
		if a.config.DriveToken != "" && !sync.StoredTokenUsable(a.config.DriveToken, time.Now()) {
			return nil, fmt.Errorf("%w: stored backup token has expired, sign in again", common.ErrAuthInvalid)
		}
		return sync.NewDriveTransport(sync.NewStaticTokenSource(a.config.DriveToken)), nil
	default:
		return nil, fmt.Errorf("unknown sync transport %q", a.config.SyncTransport)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Println("Welcome to Journly CLI (type 'help' for commands)")

	configured, err := a.session.Configured(ctx)
	if err != nil {
		a.log.Error(ctx, "reading vault state", "error", err)
		return
	}
	if !configured {
		fmt.Println("No vault found. Run 'setup' to create one.")
	} else {
		_ = a.Unlock(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	a.locker.Stop()
	a.session.Lock()
	if a.db != nil {
		_ = a.db.Close()
	}
}
