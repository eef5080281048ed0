package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fetches a fresh value for key
type Loader[T any] func(ctx context.Context, key string) (T, error)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store is a keyed read-through cache with a fixed TTL.
// Concurrent misses on the same key share a single load.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time

	// generations only grow; a load may store its value only if the
	// stamp it started with is still current
	generations map[string]uint64
	epoch       uint64
	inflight    map[string]int

	loadTimeout time.Duration
}

// DefaultLoadTimeout bounds a shared load once it is detached from its caller
const DefaultLoadTimeout = 30 * time.Second

// NewStore creates a Store. A ttl <= 0 disables caching: every Get loads.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries:     make(map[string]entry[T]),
		ttl:         ttl,
		now:         time.Now,
		generations: make(map[string]uint64),
		inflight:    make(map[string]int),
		loadTimeout: DefaultLoadTimeout,
	}
}

// Get returns the cached value for key if present and not expired
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the configured TTL
func (s *Store[T]) Set(key string, value T) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors are returned to every waiting caller and never cached.
//
// The load is shared by every caller waiting on key, so it runs detached from
// the caller's cancellation and is bounded by the load timeout instead. A caller
// whose ctx ends stops waiting with ctx.Err(); the load carries on for the rest.
// A value loaded across an Invalidate or Purge is returned but not cached.
func (s *Store[T]) GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		stamp := s.begin(key)
		defer s.done(key)

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		v, err := load(loadCtx, key)
		if err != nil {
			return v, err
		}
		s.setIfCurrent(key, v, stamp)
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// begin registers an in-flight load and returns the stamp it must match to store its value
func (s *Store[T]) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[key]++
	return s.stampLocked(key)
}

func (s *Store[T]) done(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[key]--; s.inflight[key] <= 0 {
		delete(s.inflight, key)
	}
}

func (s *Store[T]) stampLocked(key string) uint64 {
	return s.epoch + s.generations[key]
}

func (s *Store[T]) setIfCurrent(key string, value T, stamp uint64) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stampLocked(key) != stamp {
		return
	}
	s.entries[key] = entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Invalidate drops key so the next read reloads it.
// A load already running for key will not store its result.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	s.generations[key]++
	s.group.Forget(key)
}

// Purge drops every entry and returns how many were removed
func (s *Store[T]) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = make(map[string]entry[T])
	s.epoch++
	for key := range s.inflight {
		s.group.Forget(key)
	}
	return n
}

// Len returns the number of entries, expired ones included
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
