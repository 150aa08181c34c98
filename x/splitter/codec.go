package splitter

import (
	"github.com/iov-one/weave-splitter/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// marshal encodes given structure using binary amino encoding.
func marshal(o interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// unmarshal decodes binary amino encoded data into ptr. Amino encodes a
// structure of zero values as no bytes, so an empty input leaves ptr
// untouched.
func unmarshal(raw []byte, ptr interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
