package sigs

import (
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/orm"
)

const userSchema = 1

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData tracks the replay protection state of a single signer.
type UserData struct {
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Wrap(ErrInvalidSequence, "out of range")
	}
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	raw, err := (&types.Int64Value{Value: u.Sequence}).Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return orm.EncodeSchema(userSchema, raw)
}

func (u *UserData) Unmarshal(raw []byte) error {
	payload, err := orm.DecodeSchema(userSchema, raw)
	if err != nil {
		return err
	}
	var v types.Int64Value
	if err := v.Unmarshal(payload); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	u.Sequence = v.Value
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns a bucket storing the signer state by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs")
}
