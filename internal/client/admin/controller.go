// Package admin manages the registered-accounts list shown on the
// user-administration screen. Only admins reach that screen; the
// gating happens in the view layer, this controller just talks to the
// users resource. There is no create operation: accounts only come
// into existence through self-registration.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

// ErrSessionExpired mirrors archive.ErrSessionExpired for the users
// resource.
var ErrSessionExpired = errors.New("session expired")

// SessionExpirer drops the session when the server rejects its
// credential.
type SessionExpirer interface {
	ExpireSession()
}

// Controller holds the user list for the administration screen.
type Controller struct {
	client api.Client
	sess   SessionExpirer
	log    logging.Logger

	mu    sync.Mutex
	users []models.User
	gen   uint64
}

// NewController builds a Controller over the given API client.
func NewController(client api.Client, sess SessionExpirer, log logging.Logger) *Controller {
	return &Controller{client: client, sess: sess, log: log}
}

// Load replaces the user list with the server's response; failures
// leave it untouched.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	users, err := c.client.ListUsers(ctx)
	if err != nil {
		return c.fail(err, "loading users")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	c.users = users
	c.gen++
	return nil
}

// Save validates the form and updates the user with the given id,
// replacing the local entry with the server's returned representation.
// An empty form password leaves the stored password unchanged.
func (c *Controller) Save(ctx context.Context, id string, form models.UserForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	updated, err := c.client.UpdateUser(ctx, id, form)
	if err != nil {
		return c.fail(err, "updating user")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	for i := range c.users {
		if c.users[i].ID == id {
			c.users[i] = *updated
			break
		}
	}
	c.gen++
	return nil
}

// Remove deletes the account with the given id after the view has
// confirmed the action interactively.
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	if err := c.client.DeleteUser(ctx, id); err != nil {
		return c.fail(err, "deleting user")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	kept := c.users[:0:0]
	for _, u := range c.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	c.users = kept
	c.gen++
	return nil
}

// Users returns a copy of the current list in order.
func (c *Controller) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.User, len(c.users))
	copy(out, c.users)
	return out
}

// Reset empties the list, e.g. after logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
	c.gen++
}

func (c *Controller) fail(err error, op string) error {
	if api.IsUnauthorized(err) {
		c.sess.ExpireSession()
		return ErrSessionExpired
	}
	return fmt.Errorf("%s: %w", op, err)
}
