package memory

import (
	"context"
	"testing"
	"time"

	"wakili/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	text := "LEGAL DOCUMENT: CONTRACT\n\nUse form X\n"
	require.NoError(t, s.Put(ctx, "doc_user-1_42", text))

	got, err := s.Get(ctx, "doc_user-1_42")
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	s := NewDocumentStore()
	_, err := s.Get(context.Background(), "doc_user-1_missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	now := time.Now()
	keyA1 := store.DocumentKey("user-a", now)
	keyA2 := store.DocumentKey("user-a", now.Add(time.Second))
	keyB := store.DocumentKey("user-b", now)

	require.NoError(t, s.Put(ctx, keyA1, "a1"))
	require.NoError(t, s.Put(ctx, keyA2, "a2"))
	require.NoError(t, s.Put(ctx, keyB, "b"))

	docs, err := s.ListByOwner(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Contains(t, []string{keyA1, keyA2}, d.Key)
	}

	docs, err = s.ListByOwner(ctx, "user-c")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentKey(t *testing.T) {
	ts := time.Unix(0, 1700000000000000000)
	key := store.DocumentKey("user-1", ts)
	assert.Equal(t, "doc_user-1_1700000000000000000", key)
	assert.Equal(t, "doc_user-1_", store.OwnerPrefix("user-1"))

	// Distinct (caller, timestamp) pairs never collide.
	other := store.DocumentKey("user-1", ts.Add(time.Nanosecond))
	assert.NotEqual(t, key, other)
}
