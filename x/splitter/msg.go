package splitter

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

const (
	pathReceiveFundsMsg        = "splitter/receive_funds"
	pathUpdateRecipientMsg     = "splitter/update_recipient"
	pathUpdateShareMsg         = "splitter/update_share"
	pathUpdateConfigurationMsg = "splitter/update_configuration"
)

// ReceiveFundsMsg deposits an amount that is split between all registered
// recipients.
type ReceiveFundsMsg struct {
	Amount uint64 `json:"amount"`
}

var _ weave.Msg = (*ReceiveFundsMsg)(nil)

func (ReceiveFundsMsg) Path() string {
	return pathReceiveFundsMsg
}

// Validate accepts any amount. Depositing zero is allowed.
func (msg *ReceiveFundsMsg) Validate() error {
	return nil
}

func (msg *ReceiveFundsMsg) Marshal() ([]byte, error) {
	return marshal(msg)
}

func (msg *ReceiveFundsMsg) Unmarshal(raw []byte) error {
	*msg = ReceiveFundsMsg{}
	return unmarshal(raw, msg)
}

// UpdateRecipientMsg sets the weight of a recipient.
type UpdateRecipientMsg struct {
	Recipient weave.Address `json:"recipient"`
	Shares    uint32        `json:"shares"`
}

var _ weave.Msg = (*UpdateRecipientMsg)(nil)

func (UpdateRecipientMsg) Path() string {
	return pathUpdateRecipientMsg
}

func (msg *UpdateRecipientMsg) Validate() error {
	if err := msg.Recipient.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "invalid recipient address")
	}
	return nil
}

func (msg *UpdateRecipientMsg) Marshal() ([]byte, error) {
	return marshal(msg)
}

func (msg *UpdateRecipientMsg) Unmarshal(raw []byte) error {
	*msg = UpdateRecipientMsg{}
	return unmarshal(raw, msg)
}

// UpdateShareMsg sets the share of an ordered pair of recipients.
type UpdateShareMsg struct {
	Recipient1 weave.Address `json:"recipient1"`
	Recipient2 weave.Address `json:"recipient2"`
	Share      uint32        `json:"share"`
}

var _ weave.Msg = (*UpdateShareMsg)(nil)

func (UpdateShareMsg) Path() string {
	return pathUpdateShareMsg
}

func (msg *UpdateShareMsg) Validate() error {
	if err := msg.Recipient1.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "invalid first recipient address")
	}
	if err := msg.Recipient2.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "invalid second recipient address")
	}
	return nil
}

func (msg *UpdateShareMsg) Marshal() ([]byte, error) {
	return marshal(msg)
}

func (msg *UpdateShareMsg) Unmarshal(raw []byte) error {
	*msg = UpdateShareMsg{}
	return unmarshal(raw, msg)
}

// UpdateConfigurationMsg patches the splitter configuration. Only non zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (msg *UpdateConfigurationMsg) Validate() error {
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrMsg, "missing patch")
	}
	return msg.Patch.Validate()
}

func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return marshal(msg)
}

func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	*msg = UpdateConfigurationMsg{}
	return unmarshal(raw, msg)
}
