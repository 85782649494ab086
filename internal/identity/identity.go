package identity

import "errors"

// Package identity models the authenticated principal handle supplied by the
// external identity subsystem. The service never mints identities itself; it
// only distinguishes authenticated callers from the anonymous sentinel.

// Caller is an opaque token representing an authenticated principal.
type Caller string

// Anonymous is the reserved sentinel for an unauthenticated caller. It must
// never be treated as a valid owner of profiles or documents.
const Anonymous Caller = "anonymous"

// ErrUnauthorized indicates the caller is anonymous or missing.
var ErrUnauthorized = errors.New("unauthorized: authenticated caller identity required")

// Require fails if the caller is the anonymous sentinel (or empty, which is
// treated the same). It is the first step of every public operation that
// touches caller state. No side effects.
func Require(c Caller) error {
	if c == Anonymous || c == "" {
		return ErrUnauthorized
	}
	return nil
}

func (c Caller) String() string {
	return string(c)
}
