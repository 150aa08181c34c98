package splitter

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

// Entry is a single registry entry.
type Entry struct {
	Address weave.Address
	Weight  uint32
}

// GetWeight returns the weight of given account. An account that was never
// registered has a zero weight. Only a storage failure results in an error.
func GetWeight(db weave.ReadOnlyKVStore, addr weave.Address) (uint32, error) {
	var r Recipient
	switch err := NewRecipientBucket().One(db, addr, &r); {
	case err == nil:
		return r.Weight, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// IsRegistered returns true if given account has a registry entry, even if
// its weight is zero.
func IsRegistered(db weave.ReadOnlyKVStore, addr weave.Address) (bool, error) {
	switch err := NewRecipientBucket().Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// SetWeight inserts or overwrites the registry entry of given account.
// Authorization is the caller's responsibility.
func SetWeight(db weave.KVStore, addr weave.Address, weight uint32) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return NewRecipientBucket().Put(db, addr, &Recipient{Weight: weight})
}

// Recipients returns all registry entries in ascending address order.
func Recipients(db weave.ReadOnlyKVStore) ([]Entry, error) {
	it, err := NewRecipientBucket().PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var entries []Entry
	for {
		var r Recipient
		switch key, err := it.Next(&r); {
		case err == nil:
			entries = append(entries, Entry{
				Address: weave.Address(key).Clone(),
				Weight:  r.Weight,
			})
		case errors.ErrIteratorDone.Is(err):
			return entries, nil
		default:
			return nil, errors.Wrap(err, "cannot read registry")
		}
	}
}

// TotalWeight returns the sum of all registry weights. The sum is not
// allowed to exceed the weight type range and ErrOverflow is returned if it
// does.
func TotalWeight(db weave.ReadOnlyKVStore) (uint32, error) {
	entries, err := Recipients(db)
	if err != nil {
		return 0, err
	}
	return sumWeights(entries)
}

func sumWeights(entries []Entry) (uint32, error) {
	var total uint32
	for _, e := range entries {
		next := total + e.Weight
		if next < total {
			return 0, errors.Wrap(errors.ErrOverflow, "total weight")
		}
		total = next
	}
	return total, nil
}

// SetPairShare stores the share of an ordered pair of accounts.
func SetPairShare(db weave.KVStore, a, b weave.Address, share uint32) error {
	key, err := pairKey(a, b)
	if err != nil {
		return err
	}
	return NewShareBucket().Put(db, key, &PairShare{Weight: share})
}

// GetPairShare returns the share of an ordered pair of accounts or zero if
// it was never set.
func GetPairShare(db weave.ReadOnlyKVStore, a, b weave.Address) (uint32, error) {
	key, err := pairKey(a, b)
	if err != nil {
		return 0, err
	}
	var p PairShare
	switch err := NewShareBucket().One(db, key, &p); {
	case err == nil:
		return p.Weight, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
