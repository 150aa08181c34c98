package crypto

import (
	"github.com/iov-one/weave-splitter/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DefaultDerivationPath is the SLIP-0010 path used for the first account
// key derived from a mnemonic seed.
const DefaultDerivationPath = "m/44'/234'/0'"

// DeriveEd25519 derives an ed25519 private key from a master seed using
// SLIP-0010 hardened derivation along given path.
func DeriveEd25519(seed []byte, path string) (PrivateKeyEd25519, error) {
	key, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(key.Key)
}
