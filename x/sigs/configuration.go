package sigs

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/gconf"
	"github.com/iov-one/weave-splitter/orm"
	amino "github.com/tendermint/go-amino"
)

const configPkg = "sigs"

var cdc = amino.NewCodec()

// Configuration of the sigs extension.
type Configuration struct {
	// Root is the address of the account whose signature grants root
	// privilege. When empty no signature can grant root privilege.
	Root weave.Address `json:"root"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if len(c.Root) != 0 {
		if err := c.Root.Validate(); err != nil {
			return errors.Wrap(err, "root")
		}
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return orm.EncodeSchema(1, raw)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	payload, err := orm.DecodeSchema(1, raw)
	if err != nil {
		return err
	}
	*c = Configuration{}
	if len(payload) == 0 {
		// amino encodes a configuration of zero values as no bytes
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(payload, c); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// loadConfig returns the stored configuration or the zero configuration if
// none was saved.
func loadConfig(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return conf, nil
	default:
		return conf, err
	}
}

// Initializer loads the sigs configuration from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, configPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		// Running without a root account is allowed.
		return nil
	default:
		return err
	}
}
