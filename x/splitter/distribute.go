package splitter

import (
	"math/bits"
	"sort"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

// Transferer moves value between accounts. It is implemented by the
// x/cash extension.
type Transferer interface {
	Transfer(db weave.KVStore, src, dest weave.Address, amount uint64) error
}

// Payout is the amount a single recipient receives from a distribution.
type Payout struct {
	Recipient weave.Address
	Amount    uint64
}

// Distribution is the outcome of splitting a single deposit.
type Distribution struct {
	Sender weave.Address
	Amount uint64
	// Payouts contains one entry per registered recipient in ascending
	// address order, including those receiving nothing.
	Payouts []Payout
	// Remainder is the part of the amount that floor division did not
	// assign.
	Remainder uint64
	// RemainderTo is the account the remainder was given to. When it is
	// the sender no transfer is made for it.
	RemainderTo weave.Address
}

// Transferred returns the sum of all payouts.
func (d *Distribution) Transferred() uint64 {
	var sum uint64
	for _, p := range d.Payouts {
		sum += p.Amount
	}
	return sum
}

func (d *Distribution) Marshal() ([]byte, error) {
	return marshal(d)
}

func (d *Distribution) Unmarshal(raw []byte) error {
	*d = Distribution{}
	return unmarshal(raw, d)
}

// Plan computes how the amount sent by sender is split between given
// registry entries. The state is not modified.
//
// ErrNoRecipients is returned if the total weight is zero and ErrOverflow
// if any intermediate value does not fit its type.
func Plan(entries []Entry, sender weave.Address, amount uint64, policy RemainderPolicy) (*Distribution, error) {
	total, err := sumWeights(entries)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errors.Wrap(ErrNoRecipients, "total weight is zero")
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Address.Compare(sorted[j].Address) < 0
	})

	d := &Distribution{
		Sender:  sender,
		Amount:  amount,
		Payouts: make([]Payout, 0, len(sorted)),
	}
	var sent uint64
	for _, e := range sorted {
		hi, lo := bits.Mul64(amount, uint64(e.Weight))
		if hi != 0 {
			return nil, errors.Wrapf(errors.ErrOverflow, "%d * %d", amount, e.Weight)
		}
		share := lo / uint64(total)
		sent += share
		d.Payouts = append(d.Payouts, Payout{Recipient: e.Address, Amount: share})
	}
	d.Remainder = amount - sent

	switch policy {
	case RemainderToFirst:
		for i, p := range d.Payouts {
			if sorted[i].Weight == 0 {
				continue
			}
			d.Payouts[i].Amount += d.Remainder
			d.RemainderTo = p.Recipient
			break
		}
	case RemainderToSender, "":
		d.RemainderTo = sender
	default:
		return nil, errors.Wrapf(errors.ErrState, "unknown remainder policy %q", policy)
	}
	return d, nil
}

// Distribute applies all payouts of given distribution. Either all
// transfers are applied or none is.
//
// When the store is cacheable all transfers are done on a cache that is
// written only if every transfer succeeded. Otherwise transfers are
// applied directly and already applied transfers are reverted in the
// opposite order on a failure.
func Distribute(db weave.KVStore, ctrl Transferer, d *Distribution) error {
	if cstore, ok := db.(weave.CacheableKVStore); ok {
		cache := cstore.CacheWrap()
		if _, err := applyPayouts(cache, ctrl, d); err != nil {
			cache.Discard()
			return err
		}
		if err := cache.Write(); err != nil {
			return errors.Wrap(err, "cannot write distribution")
		}
		return nil
	}

	applied, err := applyPayouts(db, ctrl, d)
	if err == nil {
		return nil
	}
	for i := len(applied) - 1; i >= 0; i-- {
		p := applied[i]
		if rerr := ctrl.Transfer(db, p.Recipient, d.Sender, p.Amount); rerr != nil {
			return errors.Wrapf(err, "rollback of %d to %s failed: %s", p.Amount, p.Recipient, rerr)
		}
	}
	return err
}

// applyPayouts transfers each non zero payout in order and returns the
// payouts that were applied. It stops on the first failure.
func applyPayouts(db weave.KVStore, ctrl Transferer, d *Distribution) ([]Payout, error) {
	applied := make([]Payout, 0, len(d.Payouts))
	for _, p := range d.Payouts {
		if p.Amount == 0 {
			continue
		}
		if err := ctrl.Transfer(db, d.Sender, p.Recipient, p.Amount); err != nil {
			return applied, errors.Wrapf(ErrTransferFailed, "recipient %s: %s", p.Recipient, err)
		}
		applied = append(applied, p)
	}
	return applied, nil
}
