package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wakili/internal/identity"
	"wakili/internal/model"
)

// Package store defines data access for profiles and documents.
// No business logic here — strictly state operations. The in-memory
// implementations live in store/memory.

// ErrNotFound indicates the requested profile or document does not exist.
var ErrNotFound = errors.New("not found")

// ProfileStore keeps one usage profile per caller.
type ProfileStore interface {
	// Touch creates the caller's profile if absent (name unset, count 0) and
	// always refreshes last-active. It is idempotent and safe to call before
	// any downstream work that may fail.
	Touch(ctx context.Context, caller identity.Caller) error

	// IncrementDocumentCount increments the document count by 1 and refreshes
	// last-active. The profile must already exist; callers guarantee this by
	// invoking Touch first.
	IncrementDocumentCount(ctx context.Context, caller identity.Caller) error

	// SetName creates the profile if absent (same lazy-init rule as Touch),
	// then overwrites the display name and refreshes last-active.
	SetName(ctx context.Context, caller identity.Caller, name string) error

	// Get returns the caller's profile, or ErrNotFound if none exists.
	Get(ctx context.Context, caller identity.Caller) (*model.UserProfile, error)
}

// DocumentStore is an append-only mapping from document key to text.
// No delete operation exists; the store only grows for the process lifetime.
type DocumentStore interface {
	// Put inserts an entry at key. An overwrite can only happen on a colliding
	// key, which the key scheme (owner + timestamp) makes practically impossible.
	Put(ctx context.Context, key, text string) error

	// Get returns the stored text, or ErrNotFound if absent.
	Get(ctx context.Context, key string) (string, error)

	// ListByOwner returns the documents whose key carries the caller's prefix.
	// Order is unspecified.
	ListByOwner(ctx context.Context, caller identity.Caller) ([]model.Document, error)
}

// DocumentKey derives the storage key for a generated document. The owning
// caller is encoded in the key; ownership checks rely on this format.
func DocumentKey(caller identity.Caller, ts time.Time) string {
	return OwnerPrefix(caller) + strconv.FormatInt(ts.UnixNano(), 10)
}

// OwnerPrefix is the key prefix shared by all documents of one caller.
func OwnerPrefix(caller identity.Caller) string {
	return fmt.Sprintf("doc_%s_", caller)
}
