package orm

import (
	"testing"

	"github.com/gogo/protobuf/types"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/store"
	"github.com/iov-one/weave-splitter/weavetest/assert"
)

// counter is a minimal model used only by tests.
type counter struct {
	Count uint64
}

func (c *counter) Marshal() ([]byte, error) {
	raw, err := (&types.UInt64Value{Value: c.Count}).Marshal()
	if err != nil {
		return nil, err
	}
	return EncodeSchema(1, raw)
}

func (c *counter) Unmarshal(raw []byte) error {
	payload, err := DecodeSchema(1, raw)
	if err != nil {
		return err
	}
	var v types.UInt64Value
	if err := v.Unmarshal(payload); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	c.Count = v.Value
	return nil
}

func (c *counter) Validate() error {
	if c.Count == 666 {
		return errors.Wrap(errors.ErrModel, "evil count")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketZeroValueIsStored(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	assert.Nil(t, b.Put(db, []byte("zero"), &counter{}))
	assert.Nil(t, b.Has(db, []byte("zero")))

	c := counter{Count: 7}
	assert.Nil(t, b.One(db, []byte("zero"), &c))
	assert.Equal(t, uint64(0), c.Count)
}

func TestModelBucketPutInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	assert.IsErr(t, errors.ErrModel, b.Put(db, []byte("a"), &counter{Count: 666}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{Count: 1}))
}

func TestModelBucketPrefixScan(t *testing.T) {
	db := store.MemStore()
	cnts := NewModelBucket("cnts")
	other := NewModelBucket("cntsx")

	// a bucket with a name sharing a prefix must not leak into the scan
	assert.Nil(t, other.Put(db, []byte("a"), &counter{Count: 100}))
	for i, k := range []string{"c", "a", "b", "ba"} {
		assert.Nil(t, cnts.Put(db, []byte(k), &counter{Count: uint64(i)}))
	}

	cases := map[string]struct {
		prefix   []byte
		reverse  bool
		wantKeys []string
	}{
		"whole bucket":          {nil, false, []string{"a", "b", "ba", "c"}},
		"whole bucket reversed": {nil, true, []string{"c", "ba", "b", "a"}},
		"with prefix":           {[]byte("b"), false, []string{"b", "ba"}},
		"no match":              {[]byte("x"), false, nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cnts.PrefixScan(db, tc.prefix, tc.reverse)
			assert.Nil(t, err)
			defer it.Release()

			var keys []string
			for {
				var c counter
				key, err := it.Next(&c)
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				assert.Nil(t, err)
				keys = append(keys, string(key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestIllegalBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("A") })
	assert.Panics(t, func() { NewModelBucket("with:colon") })
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("cnts;"), prefixEnd([]byte("cnts:")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	if prefixEnd([]byte{0xff, 0xff}) != nil {
		t.Fatal("want nil end")
	}
}

func TestSchema(t *testing.T) {
	raw, err := EncodeSchema(1, nil)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, raw)

	_, err = EncodeSchema(0, []byte("x"))
	assert.IsErr(t, errors.ErrModel, err)

	payload, err := DecodeSchema(1, []byte{1, 'x'})
	assert.Nil(t, err)
	assert.Equal(t, []byte("x"), payload)

	_, err = DecodeSchema(2, []byte{1, 'x'})
	assert.IsErr(t, errors.ErrModel, err)
	_, err = DecodeSchema(1, nil)
	assert.IsErr(t, errors.ErrModel, err)
}
