package weavetest

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/crypto"
)

func NewKey() crypto.PrivateKeyEd25519 {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
