package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/postwriter/internal/adapter/driven/memory"
	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	now := time.Now().UTC()

	err := store.Save(ctx, model.Session{
		ID:         "abc",
		Usage:      model.Usage{GenerationCount: 1},
		CreatedAt:  now,
		LastSeenAt: now,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, 1, got.Usage.GenerationCount)
	assert.Equal(t, now, got.CreatedAt)
}

func TestSessionStore_GetMissing(t *testing.T) {
	store := memory.NewSessionStore()

	got, err := store.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, model.Session{ID: "abc"}))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	got.Usage.GenerationCount = 99

	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Usage.GenerationCount)
}

func TestSessionStore_SaveNeverLowersCount(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Session{ID: "abc", Usage: model.Usage{GenerationCount: 2}}))
	require.NoError(t, store.Save(ctx, model.Session{ID: "abc", Usage: model.Usage{GenerationCount: 1}}))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Usage.GenerationCount)
}

func TestSessionStore_SaveNeverClearsPrivilege(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Session{ID: "abc", Privileged: true}))
	require.NoError(t, store.Save(ctx, model.Session{ID: "abc"}))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.Privileged)
}

func TestSessionStore_DeleteIdleSince(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, model.Session{ID: "old", LastSeenAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, store.Save(ctx, model.Session{ID: "new", LastSeenAt: now}))

	removed, err := store.DeleteIdleSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Delete(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Session{ID: "abc"}))
	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"), "deleting a missing session is not an error")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSessionStore_ConcurrentSaves(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, model.Session{ID: "abc", Usage: model.Usage{GenerationCount: n}}))
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 49, got.Usage.GenerationCount)
}
