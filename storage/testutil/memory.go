package testutil

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/storage"
)

// Operation names used by Fail and Calls.
const (
	OpPut    = "put"
	OpGet    = "get"
	OpDelete = "delete"
	OpList   = "list"
)

// Name is the backend kind reported by Backend.
const Name = "memory"

type failure struct {
	err   error
	after int
}

// Backend is an in-memory storage.Backend.
type Backend struct {
	mu          sync.RWMutex
	items       map[string][]byte
	failures    map[string]failure
	calls       map[string]int
	requests    []storage.PageRequest
	unavailable bool
}

var _ storage.Backend = (*Backend)(nil)

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{
		items:    make(map[string][]byte),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}
}

// --- test controls ---

// Seed stores an empty item under each name.
func (b *Backend) Seed(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		b.items[name] = []byte{}
	}
}

// Fail makes every later call of op return err.
func (b *Backend) Fail(op string, err error) {
	b.FailAfter(op, 0, err)
}

// FailAfter lets n more calls of op succeed and fails the rest with err.
func (b *Backend) FailAfter(op string, n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = failure{err: err, after: b.calls[op] + n}
}

// ClearFailures removes all injected failures.
func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.failures)
}

// SetUnavailable switches the backend to the disabled state.
func (b *Backend) SetUnavailable(unavailable bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unavailable = unavailable
}

// Calls returns how many times op was invoked.
func (b *Backend) Calls(op string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[op]
}

// Requests returns every page request received, in order.
func (b *Backend) Requests() []storage.PageRequest {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.requests)
}

// Names returns every stored name in ascending order.
func (b *Backend) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Sorted(maps.Keys(b.items))
}

// Reset removes all items, failures, and counters.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.items)
	clear(b.failures)
	clear(b.calls)
	b.requests = nil
	b.unavailable = false
}

// Snapshot returns a deep copy of the stored items.
func (b *Backend) Snapshot() map[string][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	snap := make(map[string][]byte, len(b.items))
	for k, v := range b.items {
		snap[k] = slices.Clone(v)
	}
	return snap
}

// Restore replaces the stored items with a copy of snap.
func (b *Backend) Restore(snap map[string][]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make(map[string][]byte, len(snap))
	for k, v := range snap {
		b.items[k] = slices.Clone(v)
	}
}

// --- storage.Backend ---

// Name returns "memory".
func (b *Backend) Name() string { return Name }

// Available reports false after SetUnavailable(true).
func (b *Backend) Available() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.unavailable
}

func (b *Backend) Put(_ context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpPut); err != nil {
		return err
	}
	b.items[name] = slices.Clone(data)
	return nil
}

func (b *Backend) Get(_ context.Context, name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpGet); err != nil {
		return nil, err
	}
	data, ok := b.items[name]
	if !ok {
		return nil, apperrors.NotFound("item", name)
	}
	return slices.Clone(data), nil
}

func (b *Backend) Delete(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpDelete); err != nil {
		return err
	}
	delete(b.items, name)
	return nil
}

// ListPage ignores req.Suffix, leaving suffix filtering to the caller.
func (b *Backend) ListPage(_ context.Context, req storage.PageRequest) (storage.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if err := b.begin(OpList); err != nil {
		return storage.Page{}, err
	}

	var page storage.Page
	for _, name := range slices.Sorted(maps.Keys(b.items)) {
		if !strings.HasPrefix(name, req.Prefix) || name <= req.StartAfter {
			continue
		}
		if req.MaxKeys > 0 && len(page.Names) == req.MaxKeys {
			page.Truncated = true
			break
		}
		page.Names = append(page.Names, name)
	}
	return page, nil
}

// begin counts the call and returns the injected failure, if any. b.mu must be held.
func (b *Backend) begin(op string) error {
	b.calls[op]++
	if b.unavailable {
		return apperrors.BackendUnavailable(Name)
	}
	if f, ok := b.failures[op]; ok && b.calls[op] > f.after {
		return f.err
	}
	return nil
}
