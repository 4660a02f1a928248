package query

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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
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

func newTestClient(clock *fakeClock) *Client {
	return NewClient(Options{StaleTime: time.Minute, GCTime: 10 * time.Minute, Now: clock.Now})
}

type filters struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Page     int    `json:"page,omitempty"`
}

func TestKey_StructurallyEqualFiltersShareEntry(t *testing.T) {
	a := NewKey("products", "list", filters{Search: "vrf", Page: 2})
	b := NewKey("products", "list", filters{Page: 2, Search: "vrf"})
	assert.Equal(t, a.Hash(), b.Hash())

	m1 := map[string]any{"search": "vrf", "category": "chillers"}
	m2 := map[string]any{"category": "chillers", "search": "vrf"}
	assert.True(t, NewKey("products", "list", m1).Equal(NewKey("products", "list", m2)))

	c := NewKey("products", "list", filters{Search: "vrf", Page: 3})
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.Equal(t, "products", c.Root())
}

func TestKey_DetailIsDistinctFromList(t *testing.T) {
	list := NewKey("products", "list", filters{})
	detail := NewKey("products", "detail", "42")
	assert.NotEqual(t, list.Hash(), detail.Hash())
}

func TestFetch_ServesFreshEntryFromCache(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(clock)
	key := NewKey("categories", "list")

	var calls int32
	fn := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"Chillers"}, nil
	}

	first := Fetch(context.Background(), c, key, fn)
	require.True(t, first.IsSuccess())
	assert.False(t, first.FromCache)

	second := Fetch(context.Background(), c, key, fn)
	assert.True(t, second.FromCache)
	assert.Equal(t, []string{"Chillers"}, second.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clock.Advance(2 * time.Minute)
	third := Fetch(context.Background(), c, key, fn)
	assert.False(t, third.FromCache)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetch_DisabledStaysIdle(t *testing.T) {
	c := newTestClient(newFakeClock())
	called := false

	res := Fetch(context.Background(), c, NewKey("products", "detail", ""), func(context.Context) (string, error) {
		called = true
		return "x", nil
	}, Enabled(false))

	assert.True(t, res.IsIdle())
	assert.False(t, called)
	assert.Equal(t, 0, c.Len())
}

func TestFetch_ErrorIsNotRetriedButNextReadRefetches(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("jobs", "active")
	var calls int32
	fn := func(context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return 0, errors.New("gateway down")
		}
		return 7, nil
	}

	res := Fetch(context.Background(), c, key, fn)
	assert.True(t, res.IsError())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	snap, ok := c.Peek(key)
	require.True(t, ok)
	assert.Equal(t, StatusError, snap.Status)

	res = Fetch(context.Background(), c, key, fn)
	assert.True(t, res.IsSuccess())
	assert.Equal(t, 7, res.Data)
}

func TestFetch_ConcurrentReadsShareOneCall(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("news", "latest", 3)

	release := make(chan struct{})
	var calls int32
	fn := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "ok", nil
	}

	var wg sync.WaitGroup
	results := make([]Result[string], 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = Fetch(context.Background(), c, key, fn)
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Fetch(context.Background(), c, key, fn)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "ok", r.Data)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestFetch_LastRequestWins(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("products", "list", filters{Search: "chiller"})

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	done := make(chan Result[string])

	go func() {
		done <- Fetch(context.Background(), c, key, func(context.Context) (string, error) {
			close(slowStarted)
			<-releaseSlow
			return "stale", nil
		})
	}()
	<-slowStarted

	fresh := Fetch(context.Background(), c, key, func(context.Context) (string, error) {
		return "fresh", nil
	}, Refetch())
	require.Equal(t, "fresh", fresh.Data)

	close(releaseSlow)
	slow := <-done
	assert.Equal(t, "stale", slow.Data, "the superseded caller still gets its own response")

	snap, ok := c.Peek(key)
	require.True(t, ok)
	assert.Equal(t, "fresh", snap.Data)
	assert.Equal(t, StatusSuccess, snap.Status)
}

func TestFetch_CanceledCallerDoesNotFailJoinedCaller(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("products", "featured")

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	fn := func(ctx context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return 5, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	doneA := make(chan Result[int], 1)
	go func() { doneA <- Fetch(ctxA, c, key, fn) }()
	<-started

	doneB := make(chan Result[int], 1)
	go func() { doneB <- Fetch(context.Background(), c, key, fn) }()

	cancelA()
	a := <-doneA
	assert.True(t, a.IsError())
	assert.ErrorIs(t, a.Err, context.Canceled)

	close(release)
	b := <-doneB
	require.True(t, b.IsSuccess(), "err: %v", b.Err)
	assert.Equal(t, 5, b.Data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	snap, ok := c.Peek(key)
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, 5, snap.Data)
}

func TestFetch_SharedCallIsBoundedByFetchTimeout(t *testing.T) {
	c := NewClient(Options{FetchTimeout: 20 * time.Millisecond})

	res := Fetch(context.Background(), c, NewKey("news", "latest", 1), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, 0, c.Len())
}

func TestFetch_InvalidatedWhileLoadingIsNotWritten(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("contact-messages", "list", filters{})

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		Fetch(context.Background(), c, key, func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		close(done)
	}()
	<-started

	c.Invalidate("contact-messages")
	close(release)
	<-done

	_, ok := c.Peek(key)
	assert.False(t, ok)
}

func TestInvalidate_OnlyTouchesItsRoot(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(clock)

	productsKey := NewKey("products", "list", filters{})
	messagesKey := NewKey("contact-messages", "list", filters{})
	products := []string{"Chiller"}

	Fetch(context.Background(), c, productsKey, func(context.Context) ([]string, error) { return products, nil })
	Fetch(context.Background(), c, messagesKey, func(context.Context) (int, error) { return 3, nil })
	before, _ := c.Peek(productsKey)

	clock.Advance(time.Second)
	removed := c.Invalidate("contact-messages")
	assert.Equal(t, 1, removed)

	after, ok := c.Peek(productsKey)
	require.True(t, ok)
	assert.Equal(t, before.FetchedAt, after.FetchedAt)
	assert.Same(t, &products[0], &after.Data.([]string)[0])

	_, ok = c.Peek(messagesKey)
	assert.False(t, ok)
}

func TestSweep_DropsUnusedEntries(t *testing.T) {
	clock := newFakeClock()
	c := newTestClient(clock)

	Fetch(context.Background(), c, NewKey("news", "latest", 3), func(context.Context) (int, error) { return 1, nil })
	clock.Advance(5 * time.Minute)
	Fetch(context.Background(), c, NewKey("jobs", "active"), func(context.Context) (int, error) { return 1, nil })
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestClose_DropsEntriesAndBypassesCache(t *testing.T) {
	c := newTestClient(newFakeClock())
	key := NewKey("categories", "top")
	Fetch(context.Background(), c, key, func(context.Context) (int, error) { return 1, nil })

	c.Close()
	assert.Equal(t, 0, c.Len())

	res := Fetch(context.Background(), c, key, func(context.Context) (int, error) { return 2, nil })
	assert.Equal(t, 2, res.Data)
	assert.Equal(t, newFakeClock().Now(), res.FetchedAt)
	assert.Equal(t, 0, c.Len())
}
