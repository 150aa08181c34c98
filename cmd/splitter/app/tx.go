package app

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/x/sigs"
	"github.com/iov-one/weave-splitter/x/splitter"
	amino "github.com/tendermint/go-amino"
)

// cdc knows every message that can be carried by a transaction.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	cdc.RegisterConcrete(&splitter.ReceiveFundsMsg{}, "splitter/ReceiveFundsMsg", nil)
	cdc.RegisterConcrete(&splitter.UpdateRecipientMsg{}, "splitter/UpdateRecipientMsg", nil)
	cdc.RegisterConcrete(&splitter.UpdateShareMsg{}, "splitter/UpdateShareMsg", nil)
	cdc.RegisterConcrete(&splitter.UpdateConfigurationMsg{}, "splitter/UpdateConfigurationMsg", nil)
}

// Tx is the only transaction type accepted by the application. It carries
// exactly one message and the signatures authorizing it.
type Tx struct {
	Msg        weave.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return (&Tx{Msg: tx.Msg}).Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// MarshalJSONIndent returns a human readable representation of the
// transaction, including the type of the carried message.
func (tx *Tx) MarshalJSONIndent() ([]byte, error) {
	raw, err := cdc.MarshalJSONIndent(tx, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}
