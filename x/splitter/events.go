package splitter

import (
	"strconv"

	"github.com/iov-one/weave-splitter"
	"github.com/tendermint/tendermint/libs/common"
)

// FundsReceived is emitted once per successful deposit.
type FundsReceived struct {
	Sender weave.Address
	Amount uint64
}

var _ weave.Event = FundsReceived{}

func (FundsReceived) EventName() string { return "FundsReceived" }

func (e FundsReceived) Attributes() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("sender"), Value: []byte(e.Sender.String())},
		{Key: []byte("amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))},
	}
}

// FundsSent is emitted for every registered recipient of a successful
// deposit, even if the amount is zero.
type FundsSent struct {
	Recipient weave.Address
	Amount    uint64
}

var _ weave.Event = FundsSent{}

func (FundsSent) EventName() string { return "FundsSent" }

func (e FundsSent) Attributes() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("recipient"), Value: []byte(e.Recipient.String())},
		{Key: []byte("amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))},
	}
}

// RecipientUpdated is emitted every time a registry entry is written, even
// if the weight did not change.
type RecipientUpdated struct {
	Recipient weave.Address
}

var _ weave.Event = RecipientUpdated{}

func (RecipientUpdated) EventName() string { return "RecipientUpdated" }

func (e RecipientUpdated) Attributes() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("recipient"), Value: []byte(e.Recipient.String())},
	}
}

// ShareUpdated is emitted every time a pair share is written.
type ShareUpdated struct {
	Recipient1 weave.Address
	Recipient2 weave.Address
}

var _ weave.Event = ShareUpdated{}

func (ShareUpdated) EventName() string { return "ShareUpdated" }

func (e ShareUpdated) Attributes() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("recipient1"), Value: []byte(e.Recipient1.String())},
		{Key: []byte("recipient2"), Value: []byte(e.Recipient2.String())},
	}
}

// distributionEvents returns the events describing a successful
// distribution, in the order they are emitted.
func distributionEvents(d *Distribution) []weave.Event {
	events := make([]weave.Event, 0, 1+len(d.Payouts))
	events = append(events, FundsReceived{Sender: d.Sender, Amount: d.Amount})
	for _, p := range d.Payouts {
		events = append(events, FundsSent{Recipient: p.Recipient, Amount: p.Amount})
	}
	return events
}
