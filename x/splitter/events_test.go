package splitter

import (
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/weavetest/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestEventAttributes(t *testing.T) {
	a, b := addr(0xaa), addr(0xbb)

	cases := map[string]struct {
		Event     weave.Event
		WantName  string
		WantAttrs []common.KVPair
	}{
		"funds received": {
			Event:    FundsReceived{Sender: a, Amount: 100},
			WantName: "FundsReceived",
			WantAttrs: []common.KVPair{
				{Key: []byte("sender"), Value: []byte(a.String())},
				{Key: []byte("amount"), Value: []byte("100")},
			},
		},
		"funds sent with zero amount": {
			Event:    FundsSent{Recipient: b, Amount: 0},
			WantName: "FundsSent",
			WantAttrs: []common.KVPair{
				{Key: []byte("recipient"), Value: []byte(b.String())},
				{Key: []byte("amount"), Value: []byte("0")},
			},
		},
		"recipient updated": {
			Event:    RecipientUpdated{Recipient: a},
			WantName: "RecipientUpdated",
			WantAttrs: []common.KVPair{
				{Key: []byte("recipient"), Value: []byte(a.String())},
			},
		},
		"share updated": {
			Event:    ShareUpdated{Recipient1: a, Recipient2: b},
			WantName: "ShareUpdated",
			WantAttrs: []common.KVPair{
				{Key: []byte("recipient1"), Value: []byte(a.String())},
				{Key: []byte("recipient2"), Value: []byte(b.String())},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.WantName, tc.Event.EventName())
			assert.Equal(t, tc.WantAttrs, tc.Event.Attributes())
		})
	}
}

func TestDistributionEvents(t *testing.T) {
	sender := addr(0x01)
	d := &Distribution{
		Sender: sender,
		Amount: 10,
		Payouts: []Payout{
			{Recipient: addr(0x02), Amount: 3},
			{Recipient: addr(0x03), Amount: 0},
		},
		Remainder:   7,
		RemainderTo: sender,
	}
	want := []weave.Event{
		FundsReceived{Sender: sender, Amount: 10},
		FundsSent{Recipient: addr(0x02), Amount: 3},
		FundsSent{Recipient: addr(0x03), Amount: 0},
	}
	assert.Equal(t, want, distributionEvents(d))
}
