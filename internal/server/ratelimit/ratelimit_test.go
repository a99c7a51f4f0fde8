package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 4, 22, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testConfig(clock *fakeClock) *Config {
	cfg := NewConfig(true, 10, 6)
	cfg.CleanupInterval = 0
	cfg.Now = clock.Now
	return cfg
}

func TestTokenBucket_BurstAndRefill(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(10, 1.0, clock.Now())

	for i := 0; i < 10; i++ {
		allowed, _, _ := bucket.take(clock.Now())
		require.True(t, allowed, "request %d", i+1)
	}
	allowed, remaining, full := bucket.take(clock.Now())
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, clock.Now().Add(10*time.Second), full)
	assert.Equal(t, time.Second, bucket.nextToken())

	clock.Advance(time.Second)
	allowed, _, _ = bucket.take(clock.Now())
	assert.True(t, allowed)
	allowed, _, _ = bucket.take(clock.Now())
	assert.False(t, allowed)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(testConfig(clock))
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/vacancies", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/vacancies", "GET")
	assert.False(t, allowed)
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))

	allowed, _ = l.Allow("10.0.0.2", "/vacancies", "GET")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_ApplyRuleSharedAcrossVacancies(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(testConfig(clock))
	defer l.Stop()

	// applyPerHour 6 gives a burst of 1
	allowed, info := l.Allow("c", "/vacancies/v1/applications", "POST")
	require.True(t, allowed)
	assert.Equal(t, 6, info.Limit)

	allowed, info = l.Allow("c", "/vacancies/v2/applications", "POST")
	assert.False(t, allowed)
	assert.InDelta(t, float64(10*time.Minute), float64(info.RetryAfter), float64(time.Millisecond))

	clock.Advance(11 * time.Minute)
	allowed, _ = l.Allow("c", "/vacancies/v3/applications", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig(newFakeClock()))
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_Lists(t *testing.T) {
	cfg := testConfig(newFakeClock())
	cfg.Whitelist = ParseIPList("10.0.0.1, ")
	cfg.Blacklist = ParseIPList("10.0.0.9")
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/vacancies", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.9", "/vacancies", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(NewConfig(false, 1, 1))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/vacancies/v1/applications", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(testConfig(clock))
	defer l.Stop()

	l.Allow("a", "/vacancies", "GET")
	clock.Advance(2 * time.Hour)
	l.Allow("b", "/vacancies", "GET")
	require.Equal(t, 2, l.Len())

	l.evictIdle(clock.Now().Add(-time.Hour))
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(testConfig(clock))
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := l.Allow("c", "/resumes", "GET")
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	rules := DefaultRules(30)

	tests := []struct {
		path, method string
		want         string
	}{
		{"/health", "GET", "/health"},
		{"/vacancies/abc/applications", "POST", "/vacancies/*/applications"},
		{"/vacancies/abc/applications", "GET", ""},
		{"/vacancies", "POST", "/vacancies"},
		{"/vacancies/abc", "POST", ""},
		{"/users/u1/experience", "POST", "/users/"},
		{"/applications/a1", "PATCH", "/applications/"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, rules)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Pattern)
		})
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	allowed, info := l.Allow("c", "/vacancies", "GET")
	assert.True(t, allowed)
	assert.Equal(t, defaultPerMinute, info.Limit)
}
