package query

import (
	"context"
	"sync"
)

// MutationStatus is the lifecycle of a write.
type MutationStatus string

const (
	MutationIdle    MutationStatus = "idle"
	MutationPending MutationStatus = "pending"
	MutationSuccess MutationStatus = "success"
	MutationError   MutationStatus = "error"
)

// Mutation wraps a write against one resource domain. After a successful
// call every cache entry under that root is invalidated, then the success
// callbacks run. A failed call is never retried.
type Mutation[P, R any] struct {
	client    *Client
	root      string
	fn        func(context.Context, P) (R, error)
	onSuccess []func(R, P)
	onError   []func(error, P)

	mu     sync.Mutex
	status MutationStatus
	err    error
}

// MutationOption configures callbacks.
type MutationOption[P, R any] func(*Mutation[P, R])

func OnMutationSuccess[P, R any](fn func(R, P)) MutationOption[P, R] {
	return func(m *Mutation[P, R]) { m.onSuccess = append(m.onSuccess, fn) }
}

func OnMutationError[P, R any](fn func(error, P)) MutationOption[P, R] {
	return func(m *Mutation[P, R]) { m.onError = append(m.onError, fn) }
}

func NewMutation[P, R any](c *Client, root string, fn func(context.Context, P) (R, error), opts ...MutationOption[P, R]) *Mutation[P, R] {
	m := &Mutation[P, R]{client: c, root: root, fn: fn, status: MutationIdle}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the resource domain the mutation invalidates.
func (m *Mutation[P, R]) Root() string { return m.root }

// Mutate performs exactly one call.
func (m *Mutation[P, R]) Mutate(ctx context.Context, p P) (R, error) {
	m.setStatus(MutationPending, nil)

	res, err := m.fn(ctx, p)
	if err != nil {
		m.setStatus(MutationError, err)
		for _, cb := range m.onError {
			cb(err, p)
		}
		return res, err
	}

	m.client.Invalidate(m.root)
	m.setStatus(MutationSuccess, nil)
	for _, cb := range m.onSuccess {
		cb(res, p)
	}
	return res, nil
}

// Status returns the state of the last call and its error.
func (m *Mutation[P, R]) Status() (MutationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, m.err
}

// Reset returns the mutation to idle.
func (m *Mutation[P, R]) Reset() {
	m.setStatus(MutationIdle, nil)
}

func (m *Mutation[P, R]) setStatus(s MutationStatus, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
	m.err = err
}
