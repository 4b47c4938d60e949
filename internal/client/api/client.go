// Package api wraps the SIAP REST API: the auth, files, history and
// users resource groups. It is a stateless request wrapper except for
// the session token, which is attached to every request once set.
package api

import (
	"context"

	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// AuthResponse is the body returned by login and register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Client defines the SIAP API surface the rest of the application uses.
// All methods honor context cancellation. Failures are returned
// unchanged: *Error for non-2xx responses, wrapped transport errors
// otherwise.
type Client interface {
	// SetToken attaches token to all subsequent requests; ClearToken
	// removes it. This is the only session state the client holds.
	SetToken(token string)
	ClearToken()

	// Auth group.
	Login(ctx context.Context, form models.LoginForm) (*AuthResponse, error)
	Register(ctx context.Context, form models.RegisterForm) (*AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	// Files group.
	ListFiles(ctx context.Context) ([]models.ArchiveRecord, error)
	GetFile(ctx context.Context, id string) (*models.ArchiveRecord, error)
	CreateFile(ctx context.Context, form models.ArchiveForm) (*models.ArchiveRecord, error)
	UpdateFile(ctx context.Context, id string, form models.ArchiveForm) (*models.ArchiveRecord, error)
	DeleteFile(ctx context.Context, id string) error

	// History group (admin-gated in the UI, not here).
	ListHistory(ctx context.Context) ([]models.HistoryEntry, error)

	// Users group (admin-gated in the UI, not here).
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, form models.UserForm) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}
