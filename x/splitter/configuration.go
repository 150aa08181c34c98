package splitter

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/gconf"
	"github.com/iov-one/weave-splitter/orm"
)

const packageName = "splitter"

// RemainderPolicy decides who gets the part of a deposit that floor
// division leaves unassigned.
type RemainderPolicy string

const (
	// RemainderToSender keeps the remainder with the sender.
	RemainderToSender RemainderPolicy = "sender"
	// RemainderToFirst adds the remainder to the payout of the first
	// recipient, in ascending address order, that has a non zero weight.
	RemainderToFirst RemainderPolicy = "first"
)

// Validate returns an error for an unknown policy. An empty policy is
// valid and means RemainderToSender.
func (p RemainderPolicy) Validate() error {
	switch p {
	case "", RemainderToSender, RemainderToFirst:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown remainder policy %q", string(p))
	}
}

// Configuration of the splitter extension.
type Configuration struct {
	Remainder RemainderPolicy `json:"remainder"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return errors.Wrap(c.Remainder.Validate(), "remainder")
}

func (c *Configuration) Marshal() ([]byte, error) {
	raw, err := marshal(c)
	if err != nil {
		return nil, err
	}
	return orm.EncodeSchema(1, raw)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	payload, err := orm.DecodeSchema(1, raw)
	if err != nil {
		return err
	}
	*c = Configuration{}
	return unmarshal(payload, c)
}

// loadConfig returns the stored configuration, or the default one if none
// was stored.
func loadConfig(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var c Configuration
	switch err := gconf.Load(db, packageName, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{Remainder: RemainderToSender}, nil
	default:
		return nil, errors.Wrap(err, "cannot load configuration")
	}
}
