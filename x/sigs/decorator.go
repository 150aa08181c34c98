package sigs

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

// Decorator verifies the signatures and sets the origin of the call in
// the context.
//
// A transaction without signatures is passed down unchanged, leaving the
// origin unresolved. A transaction signed by more than one key is rejected
// because a call has exactly one origin.
type Decorator struct{}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, err := d.withOrigin(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, err := d.withOrigin(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withOrigin(ctx weave.Context, store weave.KVStore, tx weave.Tx) (weave.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}

	signers, err := VerifyTxSignatures(store, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	switch len(signers) {
	case 0:
		return ctx, nil
	case 1:
	default:
		return nil, errors.Wrapf(errors.ErrUnauthorized, "want one signature, got %d", len(signers))
	}

	conf, err := loadConfig(store)
	if err != nil {
		return nil, errors.Wrap(err, "sigs configuration")
	}
	if len(conf.Root) != 0 && conf.Root.Equals(signers[0]) {
		return weave.WithOrigin(ctx, weave.Root()), nil
	}
	return weave.WithOrigin(ctx, weave.Signed(signers[0])), nil
}
