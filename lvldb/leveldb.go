// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the goleveldb backed kv.Store holding the account ledger.
// Every account, pool header and list buffer lives under a bucket prefix in
// one database, and a stage commits through a single synced batch.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/stakepool/stsol/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// minTuning is the floor for both Options fields.
const minTuning = 16

// Options tunes the ledger database.
type Options struct {
	// CacheSize in MiB, split between the block cache and the write buffers.
	CacheSize int
	// OpenFilesCacheCapacity bounds the number of open table files.
	OpenFilesCacheCapacity int
}

func (o Options) leveldbOptions() *opt.Options {
	cache := max(o.CacheSize, minTuning)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minTuning),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		// two write buffers are kept, the active one and the one being flushed
		WriteBuffer: cache / 4 * opt.MiB,
		Filter:      filter.NewBloomFilter(10),
	}
}

var (
	readOpt  = opt.ReadOptions{}
	writeOpt = opt.WriteOptions{}
	// committed stages must survive a crash
	commitOpt = opt.WriteOptions{Sync: true}
)

// LevelDB is the ledger database.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the ledger at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger storage %s", path)
	}
	return open(stg, opts)
}

// NewMem returns an empty in-memory ledger, used by tests and dry runs.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldbOptions())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open ledger")
	}
	return &LevelDB{db: db}, nil
}

// IsNotFound reports whether err means the key is absent. Missing accounts
// are read as empty, so callers use this to tell them apart from failures.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, &readOpt)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, &writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

// Close releases the database. Later calls fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Bulk returns a batch whose Write is synced to disk. A stage commit
// writes all changed accounts through one batch, so it lands atomically.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &batch{db: ldb.db, b: new(leveldb.Batch)}
}

// Iterate walks keys in [r.Start, r.Limit).
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, &readOpt)
}

type batch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

func (b *batch) Write() error {
	return b.db.Write(b.b, &commitOpt)
}
