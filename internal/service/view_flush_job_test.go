package service

import (
	"context"
	"testing"

	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushWritesBufferedViews(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := store.addPrompt(publicPrompt(uuid.New(), "weekly-digest"))
	q := store.addPrompt(publicPrompt(uuid.New(), "bug-triage"))

	counter := cache.NewViewCounter(nil)
	require.NoError(t, counter.Add(ctx, p.Id, 3))
	require.NoError(t, counter.Add(ctx, p.Id, 2))
	require.NoError(t, counter.Add(ctx, q.Id, 1))
	require.NoError(t, counter.Add(ctx, q.Id, 0))

	job := NewViewFlushJob("@every 1m", counter, store, logger.NewNop())

	n, err := job.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(5), store.prompt(p.Id).ViewsCount)
	assert.Equal(t, int64(1), store.prompt(q.Id).ViewsCount)
	assert.Equal(t, 1, store.commits)

	n, err = job.Flush(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, store.commits)
}

func TestFlushJobRejectsBadSchedule(t *testing.T) {
	job := NewViewFlushJob("not a schedule", cache.NewViewCounter(nil), newFakeStore(), logger.NewNop())
	assert.Error(t, job.Start())
}
