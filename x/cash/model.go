package cash

import (
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/orm"
)

const walletSchema = 1

// Wallet holds the balance of a single account.
type Wallet struct {
	Balance uint64
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error {
	return nil
}

func (w *Wallet) Marshal() ([]byte, error) {
	raw, err := (&types.UInt64Value{Value: w.Balance}).Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return orm.EncodeSchema(walletSchema, raw)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	payload, err := orm.DecodeSchema(walletSchema, raw)
	if err != nil {
		return err
	}
	var v types.UInt64Value
	if err := v.Unmarshal(payload); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	w.Balance = v.Value
	return nil
}

// NewWalletBucket returns a bucket storing wallets by the owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash")
}
