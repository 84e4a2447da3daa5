package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()

	var ran atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	s.AddJob("fail", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), ran.Load())
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler()

	var ran atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	count := ran.Load()
	assert.Greater(t, count, int32(0))

	// No further executions after Stop.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, ran.Load())
}
