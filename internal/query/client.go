package query

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ignatzorin/hvacsite/internal/logger"
)

// Defaults used when Options leave a field empty.
const (
	DefaultStaleTime    = 30 * time.Second
	DefaultGCTime       = 5 * time.Minute
	DefaultFetchTimeout = 15 * time.Second
)

// Options configure a Client.
type Options struct {
	// StaleTime is how long a successful entry is served without refetching.
	StaleTime time.Duration
	// GCTime is how long an unused entry survives before Sweep drops it.
	GCTime time.Duration
	// FetchTimeout bounds a shared fetch. The fetch does not stop when the
	// caller that started it goes away, since other callers may be waiting on it.
	FetchTimeout time.Duration
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// Client is the shared query cache. It is created once at process start,
// passed by reference to every hook and dropped with Close at shutdown.
type Client struct {
	mu      sync.Mutex
	entries map[uint64]*entry
	// seq is the generation counter shared by all keys.
	seq    uint64
	closed bool

	group        singleflight.Group
	staleTime    time.Duration
	gcTime       time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
}

type entry struct {
	key       Key
	root      string
	data      any
	err       error
	status    Status
	fetchedAt time.Time
	usedAt    time.Time
	// gen changes on every new request for the key; a response is written
	// only while its gen is still current.
	gen uint64
	// hasData is set once the entry held a successful value.
	hasData bool
}

// NewClient creates an empty cache.
func NewClient(opts Options) *Client {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{
		entries:      make(map[uint64]*entry),
		staleTime:    opts.StaleTime,
		gcTime:       opts.GCTime,
		fetchTimeout: opts.FetchTimeout,
		now:          opts.Now,
	}
}

type fetchConfig struct {
	enabled   bool
	refetch   bool
	staleTime time.Duration
}

// FetchOption tweaks a single read.
type FetchOption func(*fetchConfig)

// Enabled gates the read. A disabled read never calls the fetcher and
// reports StatusIdle.
func Enabled(ok bool) FetchOption {
	return func(c *fetchConfig) { c.enabled = ok }
}

// Refetch forces a new request even when a fresh entry exists. Responses of
// requests started earlier for the same key are no longer written to the cache.
func Refetch() FetchOption {
	return func(c *fetchConfig) { c.refetch = true }
}

// StaleTime overrides the client stale time for one read.
func StaleTime(d time.Duration) FetchOption {
	return func(c *fetchConfig) { c.staleTime = d }
}

// Fetch reads key through the cache. Concurrent reads of the same key and
// generation share one call to fn. The shared call runs on a context detached
// from ctx; each caller stops waiting when its own ctx is done.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error), opts ...FetchOption) Result[T] {
	cfg := fetchConfig{enabled: true, staleTime: c.staleTime}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.enabled {
		return Result[T]{Status: StatusIdle}
	}

	hash := key.Hash()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		data, err := fn(ctx)
		return resultOf(data, err, c.now())
	}

	now := c.now()
	e := c.entries[hash]
	if e != nil && !cfg.refetch && e.status == StatusSuccess && now.Sub(e.fetchedAt) < cfg.staleTime {
		if data, ok := e.data.(T); ok {
			e.usedAt = now
			res := Result[T]{Data: data, Status: StatusSuccess, FetchedAt: e.fetchedAt, FromCache: true}
			c.mu.Unlock()
			return res
		}
	}

	switch {
	case e == nil:
		c.seq++
		e = &entry{key: key, root: key.Root(), gen: c.seq}
		c.entries[hash] = e
	case cfg.refetch || e.status != StatusLoading:
		c.seq++
		e.gen = c.seq
	}
	e.status = StatusLoading
	e.usedAt = now
	gen := e.gen
	c.mu.Unlock()

	flightKey := strconv.FormatUint(hash, 16) + ":" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		fetchCtx, cancel := c.detach(ctx)
		defer cancel()
		data, err := fn(fetchCtx)
		c.store(hash, gen, data, err)
		return data, err
	})

	var data T
	select {
	case r := <-ch:
		if r.Val != nil {
			data, _ = r.Val.(T)
		}
		return resultOf(data, r.Err, c.now())
	case <-ctx.Done():
		return resultOf(data, ctx.Err(), c.now())
	}
}

// detach keeps the values of ctx but not its cancellation.
func (c *Client) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
}

func resultOf[T any](data T, err error, at time.Time) Result[T] {
	if err != nil {
		return Result[T]{Data: data, Status: StatusError, Err: err, FetchedAt: at}
	}
	return Result[T]{Data: data, Status: StatusSuccess, FetchedAt: at}
}

// store writes a response if its generation is still current.
func (c *Client) store(hash, gen uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[hash]
	if e == nil || e.gen != gen {
		logger.Component("query").WithField("gen", gen).Debug("discarding superseded response")
		return
	}

	now := c.now()
	e.usedAt = now
	switch {
	case err == nil:
		e.data = data
		e.err = nil
		e.status = StatusSuccess
		e.fetchedAt = now
		e.hasData = true
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// Timed out; the entry keeps whatever it had before.
		if e.hasData {
			e.status = StatusSuccess
		} else {
			delete(c.entries, hash)
		}
	default:
		e.err = err
		e.status = StatusError
	}
}

// Peek returns the entry for key without fetching.
func (c *Client) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.Hash()]
	if !ok {
		return Snapshot{Key: key, Status: StatusIdle}, false
	}
	return Snapshot{Key: e.key, Data: e.data, Err: e.err, Status: e.status, FetchedAt: e.fetchedAt}, true
}

// Invalidate removes every entry under root and returns how many were dropped.
// Entries of other roots are left untouched.
func (c *Client) Invalidate(root string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for hash, e := range c.entries {
		if e.root == root {
			delete(c.entries, hash)
			removed++
		}
	}
	if removed > 0 {
		logger.Component("query").WithField("root", root).WithField("entries", removed).Debug("cache invalidated")
	}
	return removed
}

// Remove drops a single entry.
func (c *Client) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.Hash())
}

// Sweep drops entries unused for longer than the GC time. In-flight entries stay.
func (c *Client) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for hash, e := range c.entries {
		if e.status != StatusLoading && now.Sub(e.usedAt) > c.gcTime {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops all entries. Reads after Close go straight to the fetcher.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*entry)
	c.closed = true
}
