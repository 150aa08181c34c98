package splitter

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial registry, the pair shares and the
// configuration from genesis and save them to the database
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var genesis struct {
		Recipients []struct {
			Address weave.Address `json:"address"`
			Weight  uint32        `json:"weight"`
		} `json:"recipients"`
		Shares []struct {
			Recipient1 weave.Address `json:"recipient1"`
			Recipient2 weave.Address `json:"recipient2"`
			Share      uint32        `json:"share"`
		} `json:"shares"`
	}
	if err := opts.ReadOptions("splitter", &genesis); err != nil {
		return errors.Wrap(err, "cannot load splitter")
	}

	for i, r := range genesis.Recipients {
		if err := SetWeight(db, r.Address, r.Weight); err != nil {
			return errors.Wrapf(err, "cannot store #%d recipient", i)
		}
	}
	if _, err := TotalWeight(db); err != nil {
		return errors.Wrap(err, "invalid recipients")
	}
	for i, s := range genesis.Shares {
		if err := SetPairShare(db, s.Recipient1, s.Recipient2, s.Share); err != nil {
			return errors.Wrapf(err, "cannot store #%d share", i)
		}
	}

	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		// Without a configuration the default remainder policy is used.
		return nil
	default:
		return err
	}
}
