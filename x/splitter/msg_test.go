package splitter

import (
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
)

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		Msg     weave.Msg
		WantErr *errors.Error
	}{
		"deposit of any amount": {
			Msg: &ReceiveFundsMsg{Amount: 12345},
		},
		"deposit of nothing": {
			Msg: &ReceiveFundsMsg{},
		},
		"valid recipient update": {
			Msg: &UpdateRecipientMsg{Recipient: addr(1), Shares: 3},
		},
		"recipient update with zero weight": {
			Msg: &UpdateRecipientMsg{Recipient: addr(1)},
		},
		"recipient update without an address": {
			Msg:     &UpdateRecipientMsg{Shares: 3},
			WantErr: errors.ErrMsg,
		},
		"recipient update with a short address": {
			Msg:     &UpdateRecipientMsg{Recipient: weave.Address("short"), Shares: 3},
			WantErr: errors.ErrMsg,
		},
		"valid share update": {
			Msg: &UpdateShareMsg{Recipient1: addr(1), Recipient2: addr(2), Share: 7},
		},
		"share update of a recipient with itself": {
			Msg: &UpdateShareMsg{Recipient1: addr(1), Recipient2: addr(1), Share: 7},
		},
		"share update without the first recipient": {
			Msg:     &UpdateShareMsg{Recipient2: addr(2), Share: 7},
			WantErr: errors.ErrMsg,
		},
		"share update without the second recipient": {
			Msg:     &UpdateShareMsg{Recipient1: addr(1), Share: 7},
			WantErr: errors.ErrMsg,
		},
		"valid configuration update": {
			Msg: &UpdateConfigurationMsg{Patch: &Configuration{Remainder: RemainderToFirst}},
		},
		"configuration update without a patch": {
			Msg:     &UpdateConfigurationMsg{},
			WantErr: errors.ErrMsg,
		},
		"configuration update with an unknown policy": {
			Msg:     &UpdateConfigurationMsg{Patch: &Configuration{Remainder: "everyone"}},
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Msg.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	paths := map[string]weave.Msg{
		"splitter/receive_funds":        &ReceiveFundsMsg{},
		"splitter/update_recipient":     &UpdateRecipientMsg{},
		"splitter/update_share":         &UpdateShareMsg{},
		"splitter/update_configuration": &UpdateConfigurationMsg{},
	}
	for want, msg := range paths {
		if got := msg.Path(); got != want {
			t.Errorf("want %q path, got %q", want, got)
		}
	}
}
