/*
Package bolt provides a CommitKVStore persisted in a single bbolt file.

All changes are kept in memory until Commit is called. Commit writes them
in a single bbolt transaction together with the new version and hash, so a
crash never leaves a partially committed state behind.
*/
package bolt

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/store"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketState = []byte("state")
	bucketMeta  = []byte("meta")

	keyVersion = []byte("version")
	keyHash    = []byte("hash")
)

// CommitStore is a CommitKVStore backed by a bbolt database.
type CommitStore struct {
	db *bolt.DB

	pending *store.NonAtomicBatch
	working store.BTreeCacheWrap

	lastVersion int64
	lastHash    []byte
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens or creates the database file at given path. The
// parent directory is created if it does not exist.
func NewCommitStore(path string) (*CommitStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create directory: %s", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return errors.Wrapf(errors.ErrDatabase, "create bucket %q: %s", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &CommitStore{db: db}
	s.resetWorking()
	return s, nil
}

func (s *CommitStore) resetWorking() {
	s.pending = store.NewNonAtomicBatch(store.EmptyKVStore{})
	s.working = store.NewBTreeCacheWrap(reader{db: s.db}, s.pending, nil)
}

// Get returns the value from the working state, including changes not yet
// committed.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return s.working.Get(key)
}

// CacheWrap returns a savepoint on top of the working state. Writing it
// makes the changes part of the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.working.CacheWrap()
}

// Adapter exposes the working state directly. The returned store is valid
// until the next Commit or LoadLatestVersion.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return s.working
}

// Commit persists all pending changes as the next version.
func (s *CommitStore) Commit() (store.CommitID, error) {
	ops := s.pending.ShowOps()
	version := s.lastVersion + 1
	hash := nextHash(s.lastHash, version, ops)

	err := s.db.Update(func(tx *bolt.Tx) error {
		w := writer{b: tx.Bucket(bucketState)}
		for _, op := range ops {
			if err := op.Apply(w); err != nil {
				return err
			}
		}
		meta := tx.Bucket(bucketMeta)
		raw := make([]byte, 8)
		binary.BigEndian.PutUint64(raw, uint64(version))
		if err := meta.Put(keyVersion, raw); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "put version: %s", err)
		}
		if err := meta.Put(keyHash, hash); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "put hash: %s", err)
		}
		return nil
	})
	if err != nil {
		return store.CommitID{}, err
	}

	s.lastVersion, s.lastHash = version, hash
	s.resetWorking()
	return store.CommitID{Version: version, Hash: hash}, nil
}

// nextHash chains the previous hash with all operations of a version,
// including the written values.
func nextHash(prev []byte, version int64, ops []store.Op) []byte {
	h := sha256.New()
	_, _ = h.Write(prev)
	_ = binary.Write(h, binary.BigEndian, version)
	for _, op := range ops {
		if op.IsSetOp() {
			_, _ = h.Write([]byte{'s'})
		} else {
			_, _ = h.Write([]byte{'d'})
		}
		writeChunk(h, op.Key())
		if op.IsSetOp() {
			writeChunk(h, op.Value())
		}
	}
	return h.Sum(nil)
}

// writeChunk writes a length prefixed byte slice.
func writeChunk(w io.Writer, b []byte) {
	_ = binary.Write(w, binary.BigEndian, uint32(len(b)))
	_, _ = w.Write(b)
}

// LoadLatestVersion reads the version information of the last commit and
// drops all uncommitted changes.
func (s *CommitStore) LoadLatestVersion() error {
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if raw := meta.Get(keyVersion); len(raw) == 8 {
			s.lastVersion = int64(binary.BigEndian.Uint64(raw))
		} else {
			s.lastVersion = 0
		}
		s.lastHash = copyBytes(meta.Get(keyHash))
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load version: %s", err)
	}
	s.resetWorking()
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.lastVersion,
		Hash:    s.lastHash,
	}, nil
}

// Close releases the database file.
func (s *CommitStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close: %s", err)
	}
	return nil
}

// reader gives read only access to the committed state.
type reader struct {
	db *bolt.DB
}

var _ store.ReadOnlyKVStore = reader{}

func (r reader) Get(key []byte) ([]byte, error) {
	var val []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		val = copyBytes(tx.Bucket(bucketState).Get(key))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return val, nil
}

func (r reader) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

// Iterator returns all keys within [start, end) in ascending order.
func (r reader) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			res = append(res, store.Pair(copyBytes(k), copyBytes(v)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
	}
	return store.NewSliceIterator(res), nil
}

// ReverseIterator returns all keys within [start, end) in descending order.
func (r reader) ReverseIterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		var k, v []byte
		if end == nil {
			k, v = c.Last()
		} else if k, v = c.Seek(end); k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if start != nil && bytes.Compare(k, start) < 0 {
				break
			}
			res = append(res, store.Pair(copyBytes(k), copyBytes(v)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
	}
	return store.NewSliceIterator(res), nil
}

// writer applies operations to a bucket of an open write transaction.
type writer struct {
	b *bolt.Bucket
}

func (w writer) Set(key, value []byte) error {
	if err := w.b.Put(key, value); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "put: %s", err)
	}
	return nil
}

func (w writer) Delete(key []byte) error {
	if err := w.b.Delete(key); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete: %s", err)
	}
	return nil
}

// bbolt values are only valid for the life of the transaction.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
