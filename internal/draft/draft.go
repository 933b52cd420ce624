// Package draft persists in-progress event forms so an organizer can resume
// where they left off.
//
// A draft is one JSON blob per key. Restoring never fails from the caller's
// point of view: a missing or malformed blob yields the default form and a
// warning in the log.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/metrics"
)

// DefaultName is the draft name used by the event creation wizard.
const DefaultName = "event-create"

// ErrNotFound is returned by a Store when no draft exists for the key.
var ErrNotFound = errors.New("draft not found")

// Key identifies a draft. Scope is the owning organization (or a local
// profile for the CLI); Name distinguishes several drafts of one scope.
type Key struct {
	Scope string
	Name  string
}

// String returns "scope/name".
func (k Key) String() string {
	return k.Scope + "/" + k.Name
}

// Validate checks that the key can be stored.
func (k Key) Validate() error {
	if strings.TrimSpace(k.Scope) == "" {
		return fmt.Errorf("draft key: scope is required")
	}
	if strings.TrimSpace(k.Name) == "" {
		return fmt.Errorf("draft key: name is required")
	}
	if len(k.Name) > 64 {
		return fmt.Errorf("draft key: name must be at most 64 characters")
	}
	return nil
}

// Store reads and writes raw draft blobs.
type Store interface {
	// Load returns the blob for key, or ErrNotFound.
	Load(ctx context.Context, key Key) ([]byte, error)
	Save(ctx context.Context, key Key, data []byte) error
	// Delete removes the blob. Deleting a missing draft is not an error.
	Delete(ctx context.Context, key Key) error
}

// Manager encodes form state into a Store.
type Manager struct {
	store  Store
	logger *slog.Logger
}

// NewManager creates a Manager over store.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Save stores a snapshot of s under key.
func (m *Manager) Save(ctx context.Context, key Key, s eventform.State) error {
	const op = "draft.save"

	if err := key.Validate(); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		metrics.DraftOperations.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := m.store.Save(ctx, key, data); err != nil {
		metrics.DraftOperations.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.DraftOperations.WithLabelValues("save", "ok").Inc()
	return nil
}

// Restore reads the draft for key. It reports false, together with the
// default state, when there is nothing usable to restore.
func (m *Manager) Restore(ctx context.Context, key Key) (eventform.State, bool) {
	const op = "draft.restore"

	data, err := m.store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		metrics.DraftOperations.WithLabelValues("restore", "missing").Inc()
		return eventform.DefaultState(), false
	}
	if err != nil {
		m.logger.Warn("failed to load draft", "op", op, "key", key.String(), "error", err)
		metrics.DraftOperations.WithLabelValues("restore", "error").Inc()
		return eventform.DefaultState(), false
	}

	s, err := Decode(data)
	if err != nil {
		m.logger.Warn("ignoring malformed draft", "op", op, "key", key.String(), "error", err)
		metrics.DraftOperations.WithLabelValues("restore", "malformed").Inc()
		return eventform.DefaultState(), false
	}
	metrics.DraftOperations.WithLabelValues("restore", "ok").Inc()
	return s, true
}

// HydrateForm restores the draft for key into f and closes its hydration
// window. It reports whether a draft was applied.
func (m *Manager) HydrateForm(ctx context.Context, key Key, f *eventform.Form) bool {
	if f.Hydrated() {
		return false
	}
	s, ok := m.Restore(ctx, key)
	if !ok {
		f.MarkHydrated()
		return false
	}
	return f.Hydrate(s)
}

// Discard deletes the draft for key.
func (m *Manager) Discard(ctx context.Context, key Key) error {
	if err := m.store.Delete(ctx, key); err != nil {
		metrics.DraftOperations.WithLabelValues("discard", "error").Inc()
		return fmt.Errorf("draft.discard: %w", err)
	}
	metrics.DraftOperations.WithLabelValues("discard", "ok").Inc()
	return nil
}
