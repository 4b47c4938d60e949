// Package session owns the client-side authentication state: the
// current credential, the authenticated profile and the loading flag.
// It is the only writer of the API client's token and of the persisted
// credential, so every consumer observes the same session.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/keystore"
	"github.com/siap-parepare/siap-cli/internal/client/models"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

// Fallback messages when a failed auth call carries no server payload.
const (
	loginFailedMessage    = "Login failed"
	registerFailedMessage = "Registration failed"
)

// Result is the outcome of a login or register attempt. Message is
// user-displayable and only set when OK is false.
type Result struct {
	OK      bool
	Message string
}

// Store holds the session state.
//
// Invariants: profile is non-nil only while a validated token is set;
// loading is true only during Restore or an in-flight login/register.
// A failed attempt leaves the previous state untouched.
type Store struct {
	client api.Client
	keys   keystore.Store
	log    logging.Logger

	mu      sync.Mutex
	token   string
	profile *models.User
	loading bool
	epoch   uint64
}

// NewStore builds a Store over the given API client and credential
// store. The store starts in the loading state until Restore runs.
func NewStore(client api.Client, keys keystore.Store, log logging.Logger) *Store {
	return &Store{client: client, keys: keys, log: log, loading: true}
}

// Restore loads a persisted credential, if any, and validates it with
// the who-am-I endpoint. Any failure along the way counts as an
// implicit logout: credential and profile are cleared everywhere. When
// no credential is persisted the store simply leaves the loading state.
func (s *Store) Restore(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.keys.Load()
	if err != nil {
		s.log.Warn(ctx, "could not read persisted credential", "err", err)
		return
	}
	if token == "" {
		return
	}

	s.client.SetToken(token)
	profile, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "persisted credential rejected", "err", err)
		s.clear(ctx)
		return
	}

	s.mu.Lock()
	s.token = token
	s.profile = profile
	s.epoch++
	s.mu.Unlock()
	s.log.Info(ctx, "session restored", "nip", profile.NIP)
}

// Login authenticates with the SIAP API. The form is validated first;
// no request goes out when validation fails. On success the credential
// is persisted and attached to subsequent requests.
func (s *Store) Login(ctx context.Context, form models.LoginForm) Result {
	if err := form.Validate(); err != nil {
		return failure(err, loginFailedMessage)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	auth, err := s.client.Login(ctx, form)
	if err != nil {
		return failure(err, loginFailedMessage)
	}

	s.establish(ctx, auth)
	return Result{OK: true}
}

// Register creates a new account. Same contract as Login.
func (s *Store) Register(ctx context.Context, form models.RegisterForm) Result {
	if err := form.Validate(); err != nil {
		return failure(err, registerFailedMessage)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	auth, err := s.client.Register(ctx, form)
	if err != nil {
		return failure(err, registerFailedMessage)
	}

	s.establish(ctx, auth)
	return Result{OK: true}
}

// Logout clears the persisted credential, the in-memory state and the
// API client's token. It never fails; persistence problems are logged
// and the in-memory logout happens regardless.
func (s *Store) Logout() {
	s.clear(context.Background())
}

// ExpireSession is Logout under the name the controllers use when the
// server rejects a credential mid-session.
func (s *Store) ExpireSession() {
	s.Logout()
}

// IsAuthenticated reports whether a credential is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// IsAdmin reports whether the authenticated profile has the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil && s.profile.Role == models.RoleAdmin
}

// Loading reports whether initial validation or an auth call is in
// flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Profile returns a copy of the authenticated profile, or nil.
func (s *Store) Profile() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Epoch increases on every session transition. Consumers tag in-flight
// work with the epoch at issue time and discard results whose epoch no
// longer matches.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *Store) establish(ctx context.Context, auth *api.AuthResponse) {
	if err := s.keys.Save(auth.Token); err != nil {
		// The session still works for this run; it just won't survive
		// a restart.
		s.log.Warn(ctx, "could not persist credential", "err", err)
	}
	s.client.SetToken(auth.Token)

	s.mu.Lock()
	s.token = auth.Token
	profile := auth.User
	s.profile = &profile
	s.epoch++
	s.mu.Unlock()
}

func (s *Store) clear(ctx context.Context) {
	if err := s.keys.Clear(); err != nil {
		s.log.Warn(ctx, "could not clear persisted credential", "err", err)
	}
	s.client.ClearToken()

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.epoch++
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// failure maps an error to a Result with the best user-displayable
// message available: a validation message, the server's error payload,
// or the generic fallback.
func failure(err error, fallback string) Result {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return Result{Message: verr.Message}
	}
	if msg := api.ServerMessage(err); msg != "" {
		return Result{Message: msg}
	}
	return Result{Message: fallback}
}
