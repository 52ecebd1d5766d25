package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	pendingViewsKey  = keyPrefix + "views:pending"
	flushingViewsKey = keyPrefix + "views:flushing"
)

// ViewCounter buffers prompt views until the flush job writes them to the
// database. Without Redis the buffer lives in process memory.
type ViewCounter struct {
	rdb *redis.Client

	mu    sync.Mutex
	local map[uuid.UUID]int64
}

func NewViewCounter(rdb *redis.Client) *ViewCounter {
	return &ViewCounter{rdb: rdb, local: make(map[uuid.UUID]int64)}
}

func (v *ViewCounter) Add(ctx context.Context, promptID uuid.UUID, n int64) error {
	if n <= 0 {
		return nil
	}
	if v.rdb != nil {
		return v.rdb.HIncrBy(ctx, pendingViewsKey, promptID.String(), n).Err()
	}
	v.mu.Lock()
	v.local[promptID] += n
	v.mu.Unlock()
	return nil
}

// Drain returns and clears the buffered counts. A Redis drain renames the
// pending hash first so views arriving mid-flush land in a fresh hash. A
// flushing hash left behind by a failed drain is never overwritten: it is
// drained on its own and the pending hash waits for the next call.
func (v *ViewCounter) Drain(ctx context.Context) (map[uuid.UUID]int64, error) {
	if v.rdb == nil {
		v.mu.Lock()
		out := v.local
		v.local = make(map[uuid.UUID]int64)
		v.mu.Unlock()
		return out, nil
	}

	out := make(map[uuid.UUID]int64)
	if err := v.rdb.RenameNX(ctx, pendingViewsKey, flushingViewsKey).Err(); err != nil && !isNoSuchKey(err) {
		return nil, err
	}
	raw, err := v.rdb.HGetAll(ctx, flushingViewsKey).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	for k, val := range raw {
		id, err := uuid.Parse(k)
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[id] = n
	}
	// Counts stay in the flushing hash until the delete goes through.
	if err := v.rdb.Del(ctx, flushingViewsKey).Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Restore puts counts back after a failed flush.
func (v *ViewCounter) Restore(ctx context.Context, counts map[uuid.UUID]int64) {
	for id, n := range counts {
		_ = v.Add(ctx, id, n)
	}
}

func isNoSuchKey(err error) bool {
	var rerr redis.Error
	return errors.As(err, &rerr) && rerr.Error() == "ERR no such key"
}
