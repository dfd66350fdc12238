// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pebble persists state in a pebble database.
package pebble

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/specimenvm/state"
)

var (
	_ state.Mutable = (*Database)(nil)
	_ state.Batcher = (*Database)(nil)
	_ state.Batch   = (*batch)(nil)
)

type Config struct {
	CacheSize                   int  `json:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"`
	Sync                        bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

type Database struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	metrics   *metrics

	closing chan struct{}
	closed  sync.WaitGroup
}

func New(file string, cfg Config, registerer prometheus.Registerer) (*Database, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	d := &Database{
		writeOpts: &pebble.WriteOptions{Sync: cfg.Sync},
		metrics:   m,
		closing:   make(chan struct{}),
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	opts.EventListener = m.listener()
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, err
	}
	d.db = db
	d.closed.Add(1)
	go func() {
		defer d.closed.Done()
		d.collectMetrics()
	}()
	return d, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()

	return get(db.db, key)
}

func (db *Database) Insert(_ context.Context, key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Remove(_ context.Context, key []byte) error {
	return db.db.Delete(key, db.writeOpts)
}

// NewBatch returns a batch that reads through to the database and applies
// all of its writes at once.
func (db *Database) NewBatch() state.Batch {
	return &batch{db: db, b: db.db.NewIndexedBatch()}
}

func (db *Database) Close() error {
	close(db.closing)
	db.closed.Wait()
	return db.db.Close()
}

func get(r pebble.Reader, key []byte) ([]byte, error) {
	v, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// [v] is only valid until [closer] is closed.
	value := slices.Clone(v)
	return value, closer.Close()
}

type batch struct {
	db *Database
	b  *pebble.Batch
}

func (b *batch) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return get(b.b, key)
}

func (b *batch) Insert(_ context.Context, key []byte, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Remove(_ context.Context, key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Write() error {
	if err := b.b.Commit(b.db.writeOpts); err != nil {
		return err
	}
	b.db.metrics.batches.Inc()
	return nil
}
