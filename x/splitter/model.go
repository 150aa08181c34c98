package splitter

import (
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/orm"
)

const weightSchema = 1

// Recipient is the registry entry of a single account.
type Recipient struct {
	Weight uint32
}

var _ orm.Model = (*Recipient)(nil)

func (r *Recipient) Validate() error {
	return nil
}

func (r *Recipient) Marshal() ([]byte, error) {
	return marshalWeight(r.Weight)
}

func (r *Recipient) Unmarshal(raw []byte) error {
	w, err := unmarshalWeight(raw)
	if err != nil {
		return err
	}
	r.Weight = w
	return nil
}

// PairShare is the weight stored for an ordered pair of accounts.
type PairShare struct {
	Weight uint32
}

var _ orm.Model = (*PairShare)(nil)

func (p *PairShare) Validate() error {
	return nil
}

func (p *PairShare) Marshal() ([]byte, error) {
	return marshalWeight(p.Weight)
}

func (p *PairShare) Unmarshal(raw []byte) error {
	w, err := unmarshalWeight(raw)
	if err != nil {
		return err
	}
	p.Weight = w
	return nil
}

func marshalWeight(w uint32) ([]byte, error) {
	raw, err := (&types.UInt32Value{Value: w}).Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return orm.EncodeSchema(weightSchema, raw)
}

func unmarshalWeight(raw []byte) (uint32, error) {
	payload, err := orm.DecodeSchema(weightSchema, raw)
	if err != nil {
		return 0, err
	}
	var v types.UInt32Value
	if err := v.Unmarshal(payload); err != nil {
		return 0, errors.Wrap(errors.ErrModel, err.Error())
	}
	return v.Value, nil
}

// NewRecipientBucket returns the bucket holding the recipient registry,
// keyed by the recipient address.
func NewRecipientBucket() orm.ModelBucket {
	return orm.NewModelBucket("recipient")
}

// NewShareBucket returns the bucket holding the pair shares, keyed by the
// concatenation of both addresses.
func NewShareBucket() orm.ModelBucket {
	return orm.NewModelBucket("share")
}

// pairKey returns the key under which the share of an ordered pair is
// stored. Both addresses have the same fixed length, so the key is
// unambiguous.
func pairKey(a, b weave.Address) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "first recipient")
	}
	if err := b.Validate(); err != nil {
		return nil, errors.Wrap(err, "second recipient")
	}
	key := make([]byte, 0, len(a)+len(b))
	key = append(key, a...)
	return append(key, b...), nil
}
