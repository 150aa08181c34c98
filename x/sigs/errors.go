package sigs

import "github.com/iov-one/weave-splitter/errors"

var (
	// ErrInvalidSequence is returned when a signature nonce does not match
	// the expected sequence of the signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
