// Package archive owns the in-memory collection of archive records and
// keeps it synchronized with the files resource of the SIAP API. The
// collection is only mutated after the server confirms an operation;
// create and update take the server's returned representation, delete
// uses the locally-known id.
package archive

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

var (
	// ErrSessionExpired is returned when the server rejected the
	// session credential. The controller has already dropped the
	// session by the time callers see it.
	ErrSessionExpired = errors.New("session expired")

	// ErrStaleResponse is returned when a response arrived after the
	// collection had already moved on; the response was discarded and
	// no state changed.
	ErrStaleResponse = errors.New("stale response discarded")
)

// SessionExpirer drops the session when the server rejects its
// credential. *session.Store satisfies it.
type SessionExpirer interface {
	ExpireSession()
}

// Controller holds the active archive-record collection. Every request
// is tagged with the collection generation at issue time; a response
// whose generation no longer matches is discarded instead of
// overwriting newer state.
type Controller struct {
	client api.Client
	sess   SessionExpirer
	log    logging.Logger

	mu      sync.Mutex
	records []models.ArchiveRecord
	editing *models.ArchiveRecord
	gen     uint64
}

// NewController builds a Controller over the given API client. sess
// receives the expiry signal when any call comes back unauthorized.
func NewController(client api.Client, sess SessionExpirer, log logging.Logger) *Controller {
	return &Controller{client: client, sess: sess, log: log}
}

// Load replaces the whole collection with the server's response. On
// failure the collection is left untouched; an unauthorized response
// additionally expires the session.
func (c *Controller) Load(ctx context.Context) error {
	gen := c.generation()

	records, err := c.client.ListFiles(ctx)
	if err != nil {
		return c.fail(err, "loading records")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrStaleResponse
	}
	c.records = records
	c.gen++
	return nil
}

// SetEditTarget marks rec as the record the next Save updates.
func (c *Controller) SetEditTarget(rec models.ArchiveRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &rec
}

// ClearEditTarget reverts the next Save to creating a new record.
func (c *Controller) ClearEditTarget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// EditTarget returns a copy of the record being edited, or nil.
func (c *Controller) EditTarget() *models.ArchiveRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	rec := *c.editing
	return &rec
}

// Save validates the form and either updates the current edit target or
// creates a new record. An update replaces exactly the target's record
// in place, preserving order; a create prepends the server's record.
// The server's representation is authoritative either way.
func (c *Controller) Save(ctx context.Context, form models.ArchiveForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	gen := c.gen
	target := c.editing
	c.mu.Unlock()

	if target != nil {
		updated, err := c.client.UpdateFile(ctx, target.ID, form)
		if err != nil {
			return c.fail(err, "updating record")
		}
		return c.applyUpdate(gen, target.ID, *updated)
	}

	created, err := c.client.CreateFile(ctx, form)
	if err != nil {
		return c.fail(err, "creating record")
	}
	return c.applyCreate(gen, *created)
}

// Remove deletes the record with the given id. The interactive
// confirmation happens in the view before this is called. On success
// the record leaves the local collection; on failure nothing changes.
func (c *Controller) Remove(ctx context.Context, id string) error {
	gen := c.generation()

	if err := c.client.DeleteFile(ctx, id); err != nil {
		return c.fail(err, "deleting record")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrStaleResponse
	}
	kept := c.records[:0:0]
	for _, rec := range c.records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	c.records = kept
	c.gen++
	return nil
}

// Filter returns the records matching term: a case-insensitive
// substring match over file name, UPTD name, box number and
// description. The empty term returns the full collection. The result
// is a fresh slice in collection order; stored records are never
// mutated.
func (c *Controller) Filter(term string) []models.ArchiveRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ArchiveRecord, 0, len(c.records))
	for _, rec := range c.records {
		if rec.Matches(term) {
			out = append(out, rec)
		}
	}
	return out
}

// Records returns a copy of the full collection in order.
func (c *Controller) Records() []models.ArchiveRecord {
	return c.Filter("")
}

// Reset empties the collection and the edit target, e.g. after logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.editing = nil
	c.gen++
}

func (c *Controller) applyCreate(gen uint64, created models.ArchiveRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrStaleResponse
	}
	c.records = append([]models.ArchiveRecord{created}, c.records...)
	c.gen++
	return nil
}

func (c *Controller) applyUpdate(gen uint64, id string, updated models.ArchiveRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrStaleResponse
	}
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i] = updated
			break
		}
	}
	c.editing = nil
	c.gen++
	return nil
}

func (c *Controller) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// fail translates an API failure: unauthorized drops the session and
// becomes ErrSessionExpired, anything else is wrapped for the caller's
// generic notice. The collection stays at its last-known-good value.
func (c *Controller) fail(err error, op string) error {
	if api.IsUnauthorized(err) {
		c.sess.ExpireSession()
		return ErrSessionExpired
	}
	return fmt.Errorf("%s: %w", op, err)
}
