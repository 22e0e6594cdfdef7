package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := NewRedis(client, ttl)
	r.retry = 5 * time.Millisecond
	return r, mr
}

func TestRedis_AcquireAndRelease(t *testing.T) {
	r, mr := newTestRedis(t, 30*time.Second)
	ctx := context.Background()

	release, err := r.Acquire(ctx, "group-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("friendsmeet:lock:group-1"))
	assert.Equal(t, 30*time.Second, mr.TTL("friendsmeet:lock:group-1"))

	release()
	assert.False(t, mr.Exists("friendsmeet:lock:group-1"))
}

func TestRedis_HeldLockBlocks(t *testing.T) {
	r, _ := newTestRedis(t, 30*time.Second)
	ctx := context.Background()

	release, err := r.Acquire(ctx, "group-1")
	require.NoError(t, err)

	tctx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = r.Acquire(tctx, "group-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAcquired)

	release()

	release2, err := r.Acquire(ctx, "group-1")
	require.NoError(t, err)
	release2()
}

func TestRedis_ExpiredHolderCannotReleaseNewHolder(t *testing.T) {
	r, mr := newTestRedis(t, time.Second)
	ctx := context.Background()

	staleRelease, err := r.Acquire(ctx, "group-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists("friendsmeet:lock:group-1"))

	release, err := r.Acquire(ctx, "group-1")
	require.NoError(t, err)

	staleRelease()
	assert.True(t, mr.Exists("friendsmeet:lock:group-1"), "stale holder must not delete the new lock")

	release()
	assert.False(t, mr.Exists("friendsmeet:lock:group-1"))
}

func TestRedis_Unreachable(t *testing.T) {
	r, mr := newTestRedis(t, time.Second)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.Acquire(ctx, "group-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotAcquired)
	assert.Error(t, r.Ping(ctx))
}
