package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	e := &Entry{ID: "a"}
	require.NoError(t, m.Save(ctx, e))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, e, got)
	assert.Equal(t, 1, m.Len())

	got, err = m.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, e, got)
	_, err = m.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestSweepRemovesIdleOnly(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newMemory(clock.now)

	require.NoError(t, m.Save(ctx, &Entry{ID: "old"}))
	require.NoError(t, m.Save(ctx, &Entry{ID: "busy"}))

	clock.t = clock.t.Add(20 * time.Minute)
	_, err := m.Get(ctx, "busy")
	require.NoError(t, err)

	clock.t = clock.t.Add(15 * time.Minute)
	swept := m.Sweep(ctx, 30*time.Minute)

	require.Len(t, swept, 1)
	assert.Equal(t, "old", swept[0].ID)
	assert.Equal(t, 1, m.Len())
	_, err = m.Get(ctx, "busy")
	assert.NoError(t, err)
}
