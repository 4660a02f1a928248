package query

import "time"

// Status of a cache entry or of a single read.
type Status string

const (
	// StatusIdle means the query has not been fetched yet (disabled or never requested).
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is what a read hands back to its caller.
type Result[T any] struct {
	Data      T
	Status    Status
	Err       error
	FetchedAt time.Time
	// FromCache is true when no fetch was performed for this read.
	FromCache bool
}

func (r Result[T]) IsIdle() bool    { return r.Status == StatusIdle }
func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// Snapshot is a read-only view of a cache entry.
type Snapshot struct {
	Key       Key
	Data      any
	Err       error
	Status    Status
	FetchedAt time.Time
}
