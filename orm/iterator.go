package orm

import (
	"bytes"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

// ModelIterator goes over models of a single bucket.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// Next loads the next model into given destination and returns its
	// primary key. ErrIteratorDone is returned when there are no more
	// models.
	Next(dest Model) (key []byte, err error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	// this is the raw KVStoreIterator
	iterator weave.Iterator
	// this is the bucketPrefix to strip from each key
	bucketPrefix []byte
}

var _ ModelIterator = (*modelIterator)(nil)

func (i *modelIterator) Next(dest Model) ([]byte, error) {
	key, value, err := i.iterator.Next()
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(key, i.bucketPrefix) {
		return nil, errors.Wrapf(errors.ErrDatabase, "key %X outside of the bucket", key)
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %X into %T", key, dest)
	}
	return key[len(i.bucketPrefix):], nil
}

func (i *modelIterator) Release() {
	i.iterator.Release()
}
