package query

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a cached query: [resourceDomain, scope, ...discriminators].
// Discriminators are compared by value through their canonical JSON form,
// so two structurally equal filter values resolve to the same entry.
type Key []any

// NewKey builds a key from a root and the rest of its parts.
func NewKey(root string, parts ...any) Key {
	return append(Key{root}, parts...)
}

// Root returns the resource domain the key belongs to.
func (k Key) Root() string {
	if len(k) == 0 {
		return ""
	}
	if s, ok := k[0].(string); ok {
		return s
	}
	return fmt.Sprint(k[0])
}

// String returns the canonical form of the key.
func (k Key) String() string {
	b, err := json.Marshal([]any(k))
	if err != nil {
		// Values that cannot be encoded fall back to Go syntax.
		return fmt.Sprintf("%#v", []any(k))
	}
	return string(b)
}

// Hash returns the xxhash of the canonical form.
func (k Key) Hash() uint64 {
	return xxhash.Sum64String(k.String())
}

// Equal reports whether two keys address the same entry.
func (k Key) Equal(other Key) bool {
	return k.String() == other.String()
}
