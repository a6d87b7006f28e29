package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/metrics"
	"github.com/aliskhannn/guess-the-flag-bot/internal/storage"
)

func TestJanitor_Sweep(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := storage.NewSessionStorage(clock)
	ctx := context.Background()
	svc := NewGameService(testCatalog(), store, NopRecorder{}, newTestRand(), clock, zap.NewNop(), gameOptions())
	before := testutil.ToFloat64(metrics.SessionsEvictedTotal)

	_, err := svc.Start(ctx, 1, 1)
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)
	_, err = svc.Start(ctx, 2, 2)
	require.NoError(t, err)

	janitor := NewJanitor(store, time.Hour, "@every 1m", zap.NewNop())
	assert.Equal(t, 1, janitor.Sweep())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SessionsEvictedTotal)-before)

	_, err = svc.Current(ctx, 1)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Current(ctx, 2)
	assert.NoError(t, err)
}

func TestJanitor_StartRejectsBadSchedule(t *testing.T) {
	janitor := NewJanitor(storage.NewSessionStorage(clockwork.NewFakeClock()), time.Hour, "not a schedule", zap.NewNop())
	assert.Error(t, janitor.Start(context.Background()))
}

func TestJanitor_StartStopsWithContext(t *testing.T) {
	janitor := NewJanitor(storage.NewSessionStorage(clockwork.NewFakeClock()), time.Hour, "@every 1h", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- janitor.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
