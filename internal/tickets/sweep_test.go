package tickets

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// sweepRepo overrides only the method the sweep touches; anything else
// would be a bug.
type sweepRepo struct {
	Repository
	calls atomic.Int32
}

func (r *sweepRepo) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	r.calls.Add(1)
	return 3, nil
}

func TestSweepProcessorRunsOnInterval(t *testing.T) {
	repo := &sweepRepo{}
	sp := NewSweepProcessor(repo, &SweepConfig{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sp.Start(ctx)
	time.Sleep(60 * time.Millisecond)
	sp.Stop()

	assert.GreaterOrEqual(t, repo.calls.Load(), int32(2))
}

func TestSweepProcessorStopsOnContextCancel(t *testing.T) {
	repo := &sweepRepo{}
	sp := NewSweepProcessor(repo, &SweepConfig{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	sp.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()

	time.Sleep(25 * time.Millisecond)
	after := repo.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, repo.calls.Load())
}

func TestDefaultSweepConfig(t *testing.T) {
	sp := NewSweepProcessor(&sweepRepo{}, nil)
	assert.Equal(t, 5*time.Minute, sp.config.Interval)
}
