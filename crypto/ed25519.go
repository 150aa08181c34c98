/*
Package crypto provides the ed25519 keys used to sign transactions and the
conditions derived from them.
*/
package crypto

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message, sig []byte) bool
	Condition() weave.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PubKey
}

// PublicKeyEd25519 is a raw ed25519 public key.
type PublicKeyEd25519 []byte

var _ PubKey = PublicKeyEd25519(nil)

// ParsePublicKeyEd25519 returns a public key after ensuring its length.
func ParsePublicKeyEd25519(raw []byte) (PublicKeyEd25519, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return PublicKeyEd25519(raw), nil
}

// Verify verifies the signature was created with this message and public key
func (p PublicKeyEd25519) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a weave condition
func (p PublicKeyEd25519) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the account address controlled by this key.
func (p PublicKeyEd25519) Address() weave.Address {
	return p.Condition().Address()
}

// PrivateKeyEd25519 is a raw ed25519 private key.
type PrivateKeyEd25519 []byte

var _ Signer = PrivateKeyEd25519(nil)

// Sign returns a matching signature for this private key
func (p PrivateKeyEd25519) Sign(message []byte) ([]byte, error) {
	if len(p) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKeyEd25519) PublicKey() PubKey {
	return p.Public()
}

// Public returns the corresponding public key with its concrete type.
func (p PrivateKeyEd25519) Public() PublicKeyEd25519 {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKeyEd25519(pub)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivateKeyEd25519 {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKeyEd25519(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (PrivateKeyEd25519, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return PrivateKeyEd25519(ed25519.NewKeyFromSeed(seed)), nil
}
