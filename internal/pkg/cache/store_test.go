package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoadCaches(t *testing.T) {
	s := NewStore[[]string](time.Minute)
	var calls int32
	load := func(ctx context.Context, key string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{key + "-emp-1"}, nil
	}

	v1, err := s.GetOrLoad(context.Background(), "company-1", load)
	require.NoError(t, err)
	v2, err := s.GetOrLoad(context.Background(), "company-1", load)
	require.NoError(t, err)

	assert.Equal(t, []string{"company-1-emp-1"}, v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	s := NewStore[int](time.Minute)
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set("k", 1)
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStore_InvalidateAndPurge(t *testing.T) {
	s := NewStore[int](time.Minute)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Invalidate("a")
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 1, s.Purge())
	assert.Equal(t, 0, s.Len())
}

func TestStore_ErrorsAreNotCached(t *testing.T) {
	s := NewStore[int](time.Minute)
	boom := errors.New("db down")

	_, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context, key string) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context, key string) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestStore_ZeroTTLDisablesCaching(t *testing.T) {
	s := NewStore[int](0)
	var calls int32
	load := func(ctx context.Context, key string) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	_, _ = s.GetOrLoad(context.Background(), "k", load)
	_, _ = s.GetOrLoad(context.Background(), "k", load)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentMissesShareOneLoad(t *testing.T) {
	s := NewStore[int](time.Minute)
	var calls int32
	release := make(chan struct{})
	load := func(ctx context.Context, key string) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.GetOrLoad(context.Background(), "k", load)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 42, r)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestStore_InvalidateDuringLoadIsNotOverwritten(t *testing.T) {
	s := NewStore[string](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := s.GetOrLoad(context.Background(), "company-1", func(ctx context.Context, key string) (string, error) {
			close(started)
			<-release
			return "old-roster", nil
		})
		done <- v
	}()

	<-started
	s.Invalidate("company-1")
	close(release)
	assert.Equal(t, "old-roster", <-done)

	_, ok := s.Get("company-1")
	assert.False(t, ok, "a load that raced a write must not be cached")

	v, err := s.GetOrLoad(context.Background(), "company-1", func(ctx context.Context, key string) (string, error) {
		return "new-roster", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new-roster", v)

	cached, ok := s.Get("company-1")
	assert.True(t, ok)
	assert.Equal(t, "new-roster", cached)
}

func TestStore_PurgeDuringLoadIsNotOverwritten(t *testing.T) {
	s := NewStore[int](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.GetOrLoad(context.Background(), "k", func(ctx context.Context, key string) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	s.Purge()
	close(release)
	<-done

	assert.Equal(t, 0, s.Len())
}

func TestStore_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	s := NewStore[int](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var loadErr atomic.Value

	load := func(ctx context.Context, key string) (int, error) {
		select {
		case <-started:
		default:
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			loadErr.Store(err)
			return 0, err
		}
		return 42, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error)
	go func() {
		_, err := s.GetOrLoad(ctx, "k", load)
		first <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan int)
	go func() {
		v, _ := s.GetOrLoad(context.Background(), "k", load)
		second <- v
	}()
	close(release)

	assert.Equal(t, 42, <-second)
	assert.Nil(t, loadErr.Load())
	assert.Eventually(t, func() bool {
		v, ok := s.Get("k")
		return ok && v == 42
	}, time.Second, 10*time.Millisecond)
}

func TestStore_LoadTimeoutBoundsDetachedLoad(t *testing.T) {
	s := NewStore[int](time.Minute)
	s.loadTimeout = 20 * time.Millisecond

	_, err := s.GetOrLoad(context.Background(), "k", func(ctx context.Context, key string) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
