package splitter

import "github.com/iov-one/weave-splitter/errors"

var (
	// ErrNoRecipients is returned when funds are received but the total
	// weight of all registered recipients is zero.
	ErrNoRecipients = errors.Register(100, "no recipients configured")

	// ErrTransferFailed is returned when moving funds to a recipient was
	// rejected.
	ErrTransferFailed = errors.Register(101, "transfer failed")
)
