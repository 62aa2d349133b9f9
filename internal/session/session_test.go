package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AssignsFreshID(t *testing.T) {
	now := time.Now()
	a := New("alice", now)
	b := New("alice", now)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, now, a.StartedAt)
}

func TestHolder_Lifecycle(t *testing.T) {
	var h Holder
	assert.False(t, h.LoggedIn())
	assert.Nil(t, h.Clear())

	s := New("bob", time.Now())
	h.Set(s)
	require.True(t, h.LoggedIn())

	cur, ok := h.Current()
	require.True(t, ok)
	assert.Same(t, s, cur)

	assert.Same(t, s, h.Clear())
	assert.False(t, h.LoggedIn())
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	var h Holder
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Set(New("u", time.Now()))
		}()
		go func() {
			defer wg.Done()
			_ = h.LoggedIn()
		}()
	}
	wg.Wait()
	assert.True(t, h.LoggedIn())
}
