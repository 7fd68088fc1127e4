// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todo/internal/service"
)

// ErrClosed is returned by a FakeKV after Close.
var ErrClosed = errors.New("kv closed")

// FakeKV is an in-memory implementation of service.KV for testing.
type FakeKV struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
	sets   int

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error
}

var _ service.KV = (*FakeKV)(nil)

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{values: make(map[string]string)}
}

// Put stores a raw value without counting it as a write.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the raw value under key.
func (f *FakeKV) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Sets returns the number of successful Set calls.
func (f *FakeKV) Sets() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sets
}

// Closed reports whether Close was called.
func (f *FakeKV) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Get implements service.KV.
func (f *FakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements service.KV.
func (f *FakeKV) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.values[key] = value
	f.sets++
	return nil
}

// Close implements service.KV.
func (f *FakeKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}

// Reopen clears the closed state so the same values can back another session.
func (f *FakeKV) Reopen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = false
}
