// Package cli is the interactive terminal front-end: it wires the API
// client, session store and controllers together and renders the
// dashboard, archive, history and user-administration screens.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/siap-parepare/siap-cli/internal/client/admin"
	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/archive"
	"github.com/siap-parepare/siap-cli/internal/client/config"
	"github.com/siap-parepare/siap-cli/internal/client/keystore"
	"github.com/siap-parepare/siap-cli/internal/client/session"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

// User-facing notices, matching the SIAP web client wording.
const (
	noticeSessionExpired   = "Session expired. Please login again."
	noticeLoadFilesFailed  = "Failed to load files"
	noticeSaveFileFailed   = "Failed to save file"
	noticeDeleteFileFailed = "Failed to delete file"
	noticeLoadUsersFailed  = "Failed to load users"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	faint   = color.New(color.Faint)
)

// App owns the long-lived client state: one session store and one
// record-list controller for the lifetime of the process. Screens read
// from them and dispatch intents back; they hold no copies.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Store
	files   *archive.Controller
	users   *admin.Controller

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the application together. The session store is handed
// the API client explicitly; there is no process-global credential
// state anywhere.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	httpClient, err := api.NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initializing API client: %w", err)
	}

	keys := keystore.NewFileStore(cfg.DataDir)
	sess := session.NewStore(httpClient, keys, log)

	return &App{
		cfg:     cfg,
		log:     log,
		client:  httpClient,
		session: sess,
		files:   archive.NewController(httpClient, sess, log),
		users:   admin.NewController(httpClient, sess, log),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores a persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	heading.Fprintln(a.out, "SIAP - Sistem Informasi Arsip Parepare")

	a.session.Restore(ctx)
	if p := a.session.Profile(); p != nil {
		success.Fprintf(a.out, "Selamat datang kembali, %s\n", p.FullName)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) state() gateState { return gateFor(a.session) }

func (a *App) admin() bool { return a.session.IsAdmin() }

func (a *App) status() string {
	if p := a.session.Profile(); p != nil {
		return p.FullName
	}
	return "guest"
}

// logout confirms, then clears the session and all cached lists.
func (a *App) logout(ctx context.Context) {
	if !Confirm(a.reader, "Apakah Anda yakin ingin keluar?", a.out) {
		return
	}
	a.session.Logout()
	a.files.Reset()
	a.users.Reset()
	fmt.Fprintln(a.out, "Anda telah keluar.")
}

// loadFiles refreshes the record collection and prints the appropriate
// notice on failure. It reports whether the screen can proceed.
func (a *App) loadFiles(ctx context.Context) bool {
	if err := a.files.Load(ctx); err != nil {
		a.printFailure(err, noticeLoadFilesFailed)
		return false
	}
	return true
}

// printFailure renders an operation failure: session expiry gets its
// dedicated notice (the session itself is already logged out by the
// controller), everything else the per-operation generic one.
func (a *App) printFailure(err error, generic string) {
	if errors.Is(err, archive.ErrSessionExpired) || errors.Is(err, admin.ErrSessionExpired) {
		failure.Fprintln(a.out, noticeSessionExpired)
		return
	}
	if errors.Is(err, archive.ErrStaleResponse) {
		// Nothing was applied; the current state is already newer.
		return
	}
	a.log.Error(context.Background(), "operation failed", "err", err)
	failure.Fprintln(a.out, generic)
}
