package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int    `json:"x"`
	Y string `json:"y"`
}

func countingMemo(store *LRU, calls *int32, opts ...MemoOption) *Memo[int] {
	opts = append([]MemoOption{WithStore(store)}, opts...)
	return NewMemo("add", func(_ context.Context, args Args) (int, error) {
		atomic.AddInt32(calls, 1)
		return args.Named["a"].(int) + args.Named["b"].(int), nil
	}, opts...)
}

func TestMemo_CachesResult(t *testing.T) {
	var calls int32
	m := countingMemo(NewLRU(10, time.Minute), &calls)
	ctx := context.Background()

	first, err := m.Call(ctx, Named("a", 1, "b", 2))
	require.NoError(t, err)
	second, err := m.Call(ctx, Named("b", 2, "a", 1))
	require.NoError(t, err)

	assert.Equal(t, 3, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMemo_NoCacheBypasses(t *testing.T) {
	var calls int32
	store := NewLRU(10, time.Minute)
	m := countingMemo(store, &calls)
	ctx := context.Background()

	_, err := m.Call(ctx, Named("a", 1, "b", 2))
	require.NoError(t, err)
	_, err = m.Call(ctx, Named("a", 1, "b", 2))
	require.NoError(t, err)
	_, err = m.Call(ctx, Named("a", 1, "b", 2), NoCache())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	_, err = m.Call(ctx, Named("a", 5, "b", 5), Enabled(false))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len(), "bypassed calls store nothing")
}

func TestMemo_ErrorsAreNotCached(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	store := NewLRU(10, time.Minute)
	m := NewMemo("flaky", func(context.Context, Args) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", boom
		}
		return "ok", nil
	}, WithStore(store))
	ctx := context.Background()

	_, err := m.Call(ctx, Args{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())

	v, err := m.Call(ctx, Args{})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMemo_TTLPrecedence(t *testing.T) {
	clock := newFakeClock()
	store := NewLRU(10, time.Hour, WithClock(clock.Now))

	var calls int32
	m := countingMemo(store, &calls, WithTTL(10*time.Second))
	ctx := context.Background()
	args := Named("a", 1, "b", 1)

	_, _ = m.Call(ctx, args)
	clock.Advance(11 * time.Second)
	_, _ = m.Call(ctx, args)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "memo TTL overrides store default")

	_, _ = m.Call(ctx, Named("a", 2, "b", 2), TTL(time.Minute))
	clock.Advance(30 * time.Second)
	_, _ = m.Call(ctx, Named("a", 2, "b", 2))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "per-call TTL overrides memo TTL")
}

func TestMemo_KeyPrefix(t *testing.T) {
	fn := func(context.Context, Args) (int, error) { return 1, nil }
	plain := NewMemo("op", fn)
	prefixed := NewMemo("op", fn, WithKeyPrefix("v2:"))

	args := Named("geo", "KR")
	assert.NotEqual(t, plain.Key(args), prefixed.Key(args))
	assert.Equal(t, MakeKey("op", nil, args.Named), plain.Key(args))
}

func TestMemo_UsesDefaultStore(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	m := NewMemo("op", func(context.Context, Args) (int, error) { return 7, nil })
	_, err := m.Call(context.Background(), Args{})
	require.NoError(t, err)

	assert.Equal(t, 1, GetStats().Size)
}

func TestMemo_RemoteTier(t *testing.T) {
	mr := miniredis.RunT(t)
	remote, err := NewRedisAdapter("redis://"+mr.Addr(), "test:")
	require.NoError(t, err)
	t.Cleanup(func() { remote.Close() })

	var calls int32
	fn := func(_ context.Context, args Args) (point, error) {
		atomic.AddInt32(&calls, 1)
		return point{X: args.Named["x"].(int), Y: "fresh"}, nil
	}
	ctx := context.Background()
	args := Named("x", 4)

	writer := NewMemo("point", fn, WithStore(NewLRU(10, time.Minute)), WithRemote(remote))
	got, err := writer.Call(ctx, args)
	require.NoError(t, err)
	assert.Equal(t, point{X: 4, Y: "fresh"}, got)
	assert.True(t, mr.Exists("test:"+writer.Key(args)))

	// A second process with a cold local store reads the shared entry.
	reader := NewMemo("point", fn, WithStore(NewLRU(10, time.Minute)), WithRemote(remote))
	got, err = reader.Call(ctx, args)
	require.NoError(t, err)
	assert.Equal(t, point{X: 4, Y: "fresh"}, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMemo_RemoteFailureFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	remote, err := NewRedisAdapter("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { remote.Close() })
	mr.Close()

	m := NewMemo("op", func(context.Context, Args) (int, error) { return 9, nil },
		WithStore(NewLRU(10, time.Minute)), WithRemote(remote))

	v, err := m.Call(context.Background(), Args{})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestMemo_ConcurrentMissesShareOneCall(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	m := NewMemo("slow", func(context.Context, Args) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}, WithStore(NewLRU(10, time.Minute)))

	const n = 8
	var started, wg sync.WaitGroup
	results := make([]int, n)
	for i := 0; i < n; i++ {
		started.Add(1)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], _ = m.Call(context.Background(), Args{})
		}(i)
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestMemo_CancelledCallerDoesNotFailSharedCall(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	store := NewLRU(10, time.Minute)
	m := NewMemo("slow", func(ctx context.Context, _ Args) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 42, ctx.Err()
	}, WithStore(store))

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := m.Call(leaderCtx, Args{})
		leaderErr <- err
	}()
	<-started

	follower := make(chan int, 1)
	go func() {
		v, err := m.Call(context.Background(), Args{})
		assert.NoError(t, err)
		follower <- v
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	assert.Equal(t, 42, <-follower)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	v, ok := store.Get(m.Key(Args{}))
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}
