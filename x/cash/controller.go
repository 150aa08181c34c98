package cash

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/orm"
)

// Controller is the functionality needed by other extensions to move value
// between accounts.
type Controller interface {
	// Balance returns the amount held by given account. An account that
	// never received anything has a zero balance.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)

	// Transfer moves amount from src to dest. It fails without changing
	// the state if src does not hold enough or dest would overflow.
	Transfer(db weave.KVStore, src, dest weave.Address, amount uint64) error

	// Issue creates amount out of thin air and deposits it on dest.
	Issue(db weave.KVStore, dest weave.Address, amount uint64) error
}

// BaseController is the default Controller implementation, storing
// wallets in a model bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default wallet bucket.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (c BaseController) Transfer(db weave.KVStore, src, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", sender.Balance, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Balance -= amount
	recipient.Balance += amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) Issue(db weave.KVStore, dest weave.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Balance+amount < w.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	w.Balance += amount
	return c.bucket.Put(db, dest, w)
}

// load returns the wallet of given account or an empty one if the account
// was never used.
func (c BaseController) load(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
}
