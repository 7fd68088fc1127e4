// Package persist keeps a key-value store in step with the task store.
//
// The whole task sequence is written under one fixed key after every
// mutation; the id counter is written under a companion key so ids are not
// reused after everything has been purged. Failures never reach the caller:
// a value that cannot be decoded loads as an empty list, and a failed write
// leaves the in-memory state authoritative for the session.
package persist

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"todo/internal/service"
	"todo/internal/task"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "todo_vec"

// counterSuffix names the companion key holding the next id.
const counterSuffix = ".next_id"

// Bridge translates between the task sequence and the KV store.
type Bridge struct {
	kv     service.KV
	key    string
	logger *slog.Logger
}

// New creates a bridge over kv. An empty key selects DefaultKey and a nil
// logger discards.
func New(kv service.KV, key string, logger *slog.Logger) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bridge{kv: kv, key: key, logger: logger}
}

// Key returns the key the task list is stored under.
func (b *Bridge) Key() string { return b.key }

// CounterKey returns the key the next id is stored under.
func (b *Bridge) CounterKey() string { return b.key + counterSuffix }

// Load reads the stored task list. Absent, unreadable or malformed data
// yields an empty list.
func (b *Bridge) Load(ctx context.Context) []task.Task {
	value, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.Debug("load tasks failed", "key", b.key, "error", err)
		return []task.Task{}
	}
	if !ok || isBlank(value) {
		return []task.Task{}
	}

	tasks, err := Decode(value)
	if err != nil {
		b.logger.Debug("discarding stored tasks", "key", b.key, "error", err)
		return []task.Task{}
	}
	return tasks
}

// Save writes the full task list. Write failures are logged and dropped.
func (b *Bridge) Save(ctx context.Context, tasks []task.Task) {
	value, err := Encode(tasks)
	if err != nil {
		b.logger.Debug("encode tasks failed", "error", err)
		return
	}
	if err := b.kv.Set(ctx, b.key, value); err != nil {
		b.logger.Debug("save tasks failed", "key", b.key, "error", err)
	}
}

// LoadCounter returns the stored next id, or 0 when it is absent or unusable.
func (b *Bridge) LoadCounter(ctx context.Context) int {
	key := b.CounterKey()
	value, ok, err := b.kv.Get(ctx, key)
	if err != nil {
		b.logger.Debug("load counter failed", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		b.logger.Debug("discarding stored counter", "key", key, "value", value)
		return 0
	}
	return n
}

// SaveCounter writes the next id. Write failures are logged and dropped.
func (b *Bridge) SaveCounter(ctx context.Context, next int) {
	key := b.CounterKey()
	if err := b.kv.Set(ctx, key, strconv.Itoa(next)); err != nil {
		b.logger.Debug("save counter failed", "key", key, "error", err)
	}
}

// Sync writes the task list and the counter.
func (b *Bridge) Sync(ctx context.Context, tasks []task.Task, next int) {
	b.Save(ctx, tasks)
	b.SaveCounter(ctx, next)
}

// Restore seeds store from the KV store: the task list first, then the
// stored counter if it is ahead of the one derived from the tasks.
func (b *Bridge) Restore(ctx context.Context, store *task.Store) {
	tasks := b.Load(ctx)
	store.Initialize(tasks)
	store.AdvanceCounter(b.LoadCounter(ctx))
	b.logger.Debug("restored tasks", "count", len(tasks), "next_id", store.NextID())
}

// Bind sets store's syncer so every mutation is written through this bridge.
func (b *Bridge) Bind(ctx context.Context, store *task.Store) {
	store.SetSyncer(task.SyncFunc(func(tasks []task.Task, next int) {
		b.Sync(ctx, tasks, next)
	}))
}
