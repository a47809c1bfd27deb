package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
)

type fakeGauge struct{ value float64 }

func (g *fakeGauge) Set(v float64) { g.value = v }

func TestSessionManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	gauge := &fakeGauge{}
	m := NewSessionManager(gauge)

	s, err := m.Create(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s.Groups)
	require.NotNil(t, s.Personal)
	assert.Equal(t, float64(1), gauge.value)

	_, err = m.Create(ctx, "s1")
	require.Error(t, err)

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(ctx, "s1"))
	assert.Equal(t, float64(0), gauge.value)

	_, err = m.Get(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.ErrorIs(t, m.Delete(ctx, "s1"), domain.ErrSessionNotFound)
}

func TestSessionManager_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewSessionManager(nil)

	a, err := m.Create(ctx, "a")
	require.NoError(t, err)
	b, err := m.Create(ctx, "b")
	require.NoError(t, err)

	g, err := domain.NewGroup("trip", time.Now())
	require.NoError(t, err)
	require.NoError(t, a.Groups.Create(ctx, g))

	groups, err := b.Groups.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSessionManager_EvictIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(nil)
	m.now = func() time.Time { return now }

	_, err := m.Create(ctx, "old")
	require.NoError(t, err)
	_, err = m.Create(ctx, "fresh")
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, err = m.Get(ctx, "fresh")
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, m.EvictIdle(30*time.Minute))
	assert.Equal(t, 1, m.Len())

	_, err = m.Get(ctx, "old")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionManager_RunJanitorStopsOnCancel(t *testing.T) {
	m := NewSessionManager(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.RunJanitor(ctx, time.Millisecond, time.Hour) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
