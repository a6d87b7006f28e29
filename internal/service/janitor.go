package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/metrics"
)

// Janitor evicts game sessions nobody touched for longer than the TTL.
type Janitor struct {
	store    SessionStore
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

func NewJanitor(store SessionStore, ttl time.Duration, schedule string, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the eviction job on its cron schedule until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.schedule, func() { j.Sweep() }); err != nil {
		return fmt.Errorf("add janitor job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

// Sweep evicts idle sessions once and returns how many were removed.
func (j *Janitor) Sweep() int {
	evicted := j.store.EvictIdle(j.ttl)
	metrics.ActiveSessions.Set(float64(j.store.Len()))

	if evicted > 0 {
		metrics.SessionsEvictedTotal.Add(float64(evicted))
		j.logger.Info("idle sessions evicted", zap.Int("count", evicted))
	}

	return evicted
}
