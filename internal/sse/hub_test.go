package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/cosmic-word/internal/game"
)

func TestPublishEncodesEvent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(game.LetterEntered{Row: 1, Col: 2, Letter: "a"})

	msg := <-ch
	assert.Equal(t, "letter_entered", msg.Event)
	assert.JSONEq(t, `{"row":1,"col":2,"letter":"a"}`, string(msg.Data))
}

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < BufferSize+10; i++ {
		h.Publish(game.TimerExpired{})
	}
	assert.Len(t, ch, BufferSize)
}

func TestCancelUnsubscribes(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	require.Equal(t, 1, h.Clients())

	cancel()
	cancel()
	assert.Equal(t, 0, h.Clients())
	_, open := <-ch
	assert.False(t, open)

	h.Publish(game.TimerExpired{}) // no panic on closed subscriber
}

func TestCloseDisconnectsAll(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	b, _ := h.Subscribe()

	h.Close()
	_, openA := <-a
	_, openB := <-b
	assert.False(t, openA)
	assert.False(t, openB)
	cancelA()

	c, _ := h.Subscribe()
	_, openC := <-c
	assert.False(t, openC, "subscriptions after close are already closed")
}
