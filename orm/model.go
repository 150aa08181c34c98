package orm

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	weave.Persistent
	Validate() error
}

// EncodeSchema prefixes the serialized payload with a schema version. The
// stored value is never empty, even for a zero value payload, so that the
// presence of a key can always be told apart from its absence.
func EncodeSchema(schema uint8, payload []byte) ([]byte, error) {
	if schema == 0 {
		return nil, errors.Wrap(errors.ErrModel, "schema version must be greater than zero")
	}
	raw := make([]byte, 1+len(payload))
	raw[0] = schema
	copy(raw[1:], payload)
	return raw, nil
}

// DecodeSchema returns the payload of a value serialized with EncodeSchema.
// Values of any other schema version are rejected.
func DecodeSchema(schema uint8, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrModel, "missing schema version")
	}
	if raw[0] != schema {
		return nil, errors.Wrapf(errors.ErrModel, "unsupported schema version %d, want %d", raw[0], schema)
	}
	return raw[1:], nil
}
