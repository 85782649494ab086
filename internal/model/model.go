package model

import "time"

// Package model contains domain models/data structures.
// These are pure domain types with no storage-specific dependencies; they can
// be used across layers (HTTP, service, store) without coupling to persistence.

// UserProfile is per-caller usage metadata. One profile exists per caller,
// created lazily on the first authenticated interaction of any kind.
// DocumentCount never decreases; LastActive never moves backwards within a
// single profile.
type UserProfile struct {
	Name          *string   `json:"name,omitempty"`
	DocumentCount uint32    `json:"document_count"`
	LastActive    time.Time `json:"last_active"`
}

// Document is an immutable generated text artifact. The owning caller is
// encoded in the key itself; there is no separate ACL field.
type Document struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}
