package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newCache[string](ttl, clock.Now), clock
}

func TestCache_SetGetExpire(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	c.Set("a", "1")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestCache_SlidingExpiration(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	c.Set("a", "1")
	for i := 0; i < 5; i++ {
		clock.Advance(40 * time.Second)
		_, ok := c.Get("a")
		assert.True(t, ok, "read %d", i)
	}
}

func TestCache_GetOrCreateOnce(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	defer c.Close()

	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := c.GetOrCreate("k", func() string {
				atomic.AddInt32(&calls, 1)
				return "built"
			})
			assert.Equal(t, "built", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls)
}

func TestCache_PurgeAndDelete(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	defer c.Close()

	c.Set("old", "x")
	clock.Advance(30 * time.Second)
	c.Set("new", "y")
	clock.Advance(45 * time.Second)

	c.Purge()
	assert.Equal(t, 1, c.Size())

	c.Delete("new")
	assert.Equal(t, 0, c.Size())

	// Close is safe to call twice
	c.Close()
}
