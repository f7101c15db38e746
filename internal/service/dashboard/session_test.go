package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm := NewSessionManager(func() *Dashboard { return New(nil, nil) })

	id, d := sm.CreateSession()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok := sm.GetSession(id)
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = sm.GetSession("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, sm.Len())
}

func TestSessionManager_SessionsAreIsolated(t *testing.T) {
	sm := NewSessionManager(func() *Dashboard { return New(nil, nil) })

	_, first := sm.CreateSession()
	_, second := sm.CreateSession()
	require.NoError(t, first.SetField("name", "Widget"))

	assert.Equal(t, "Widget", first.View().Form.Form.Name)
	assert.Empty(t, second.View().Form.Form.Name)
}

func TestSessionManager_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSessionManager(func() *Dashboard { return New(nil, nil) })
	sm.now = func() time.Time { return now }

	stale, _ := sm.CreateSession()
	now = now.Add(20 * time.Minute)
	fresh, _ := sm.CreateSession()

	removed := sm.Sweep(now.Add(-10 * time.Minute))
	assert.Equal(t, 1, removed)

	_, ok := sm.GetSession(stale)
	assert.False(t, ok)
	_, ok = sm.GetSession(fresh)
	assert.True(t, ok)
}

func TestSessionManager_GetRefreshesLastSeen(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sm := NewSessionManager(func() *Dashboard { return New(nil, nil) })
	sm.now = func() time.Time { return now }

	id, _ := sm.CreateSession()
	now = now.Add(20 * time.Minute)
	_, ok := sm.GetSession(id)
	require.True(t, ok)

	assert.Zero(t, sm.Sweep(now.Add(-10*time.Minute)))
}
