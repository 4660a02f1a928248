package query

import (
	"context"
	"strconv"
	"time"
)

// Page is one page returned by an infinite fetcher. Pages are numbered from 1.
type Page[T any] struct {
	Items []T
	Total int
	Limit int
}

// PageFunc loads page number page.
type PageFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// InfiniteResult is the accumulated state of an infinite query.
type InfiniteResult[T any] struct {
	Pages     [][]T
	Total     int
	HasMore   bool
	Status    Status
	Err       error
	FetchedAt time.Time
}

// Items flattens all loaded pages.
func (r InfiniteResult[T]) Items() []T {
	out := make([]T, 0)
	for _, p := range r.Pages {
		out = append(out, p...)
	}
	return out
}

// PageCount returns how many pages were loaded.
func (r InfiniteResult[T]) PageCount() int { return len(r.Pages) }

type infiniteState[T any] struct {
	pages   [][]T
	total   int
	hasMore bool
}

// Infinite is a paginated read whose pages live in one cache entry. Handles
// built with equal keys share progress; invalidating the root restarts it.
type Infinite[T any] struct {
	client *Client
	key    Key
	fetch  PageFunc[T]
}

func NewInfinite[T any](c *Client, key Key, fetch PageFunc[T]) *Infinite[T] {
	return &Infinite[T]{client: c, key: key, fetch: fetch}
}

// HasMore reports whether a page exists after page when total items are
// split into pages of limit items.
func HasMore(page, total, limit int) bool {
	if limit <= 0 {
		return false
	}
	pages := (total + limit - 1) / limit
	return page < pages
}

// Current returns the loaded pages without fetching.
func (q *Infinite[T]) Current() InfiniteResult[T] {
	snap, ok := q.client.Peek(q.key)
	if !ok {
		return InfiniteResult[T]{Status: StatusIdle, HasMore: true}
	}
	st, _ := snap.Data.(*infiniteState[T])
	return stateResult(st, snap.Status, snap.Err, snap.FetchedAt)
}

// Next loads the page after the last loaded one. Once HasMore is false it
// returns the accumulated pages without another fetch until Reset.
func (q *Infinite[T]) Next(ctx context.Context) InfiniteResult[T] {
	c := q.client
	hash := q.key.Hash()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return InfiniteResult[T]{Status: StatusError, Err: context.Canceled}
	}
	e := c.entries[hash]
	var st *infiniteState[T]
	if e != nil {
		st, _ = e.data.(*infiniteState[T])
	}
	if st != nil && !st.hasMore {
		res := stateResult(st, StatusSuccess, nil, e.fetchedAt)
		e.usedAt = c.now()
		c.mu.Unlock()
		return res
	}
	if e == nil {
		c.seq++
		e = &entry{key: q.key, root: q.key.Root(), gen: c.seq}
		c.entries[hash] = e
	}
	if st == nil {
		st = &infiniteState[T]{hasMore: true}
	}
	page := len(st.pages) + 1
	e.status = StatusLoading
	e.usedAt = c.now()
	gen := e.gen
	c.mu.Unlock()

	flightKey := strconv.FormatUint(hash, 16) + ":" + strconv.FormatUint(gen, 10) + ":p" + strconv.Itoa(page)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		fetchCtx, cancel := c.detach(ctx)
		defer cancel()
		p, err := q.fetch(fetchCtx, page)
		q.storePage(hash, gen, page, p, err)
		return nil, err
	})

	var err error
	select {
	case r := <-ch:
		err = r.Err
	case <-ctx.Done():
		return InfiniteResult[T]{Status: StatusError, Err: ctx.Err(), HasMore: true}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[hash]; e != nil && e.gen == gen {
		cur, _ := e.data.(*infiniteState[T])
		return stateResult(cur, e.status, e.err, e.fetchedAt)
	}
	// Superseded by Reset or invalidation while loading.
	if err != nil {
		return InfiniteResult[T]{Status: StatusError, Err: err, HasMore: true}
	}
	return InfiniteResult[T]{Status: StatusIdle, HasMore: true}
}

func (q *Infinite[T]) storePage(hash, gen uint64, page int, p Page[T], err error) {
	c := q.client
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[hash]
	if e == nil || e.gen != gen {
		return
	}
	if err != nil {
		e.err = err
		e.status = StatusError
		return
	}
	prev, _ := e.data.(*infiniteState[T])
	if prev != nil && len(prev.pages) >= page {
		// Another caller already appended this page.
		e.status = StatusSuccess
		return
	}

	next := &infiniteState[T]{total: p.Total}
	if prev != nil {
		next.pages = append(next.pages, prev.pages...)
	}
	items := p.Items
	if items == nil {
		items = []T{}
	}
	next.pages = append(next.pages, items)
	next.hasMore = HasMore(page, p.Total, p.Limit)

	now := c.now()
	e.data = next
	e.err = nil
	e.status = StatusSuccess
	e.fetchedAt = now
	e.usedAt = now
	e.hasData = true
}

// Reset drops all loaded pages; the next call starts again from page 1.
func (q *Infinite[T]) Reset() {
	q.client.Remove(q.key)
}

func stateResult[T any](st *infiniteState[T], status Status, err error, at time.Time) InfiniteResult[T] {
	if st == nil {
		return InfiniteResult[T]{Status: status, Err: err, HasMore: true, FetchedAt: at}
	}
	return InfiniteResult[T]{
		Pages:     st.pages,
		Total:     st.total,
		HasMore:   st.hasMore,
		Status:    status,
		Err:       err,
		FetchedAt: at,
	}
}
