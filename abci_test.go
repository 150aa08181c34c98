package weave_test

import (
	"fmt"
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

type demoEvent struct {
	name  string
	attrs []common.KVPair
}

func (e demoEvent) EventName() string            { return e.name }
func (e demoEvent) Attributes() []common.KVPair { return e.attrs }

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err  error
		code uint32
	}{
		"unregistered error":  {fmt.Errorf("base"), 1},
		"registered error":    {errors.ErrUnauthorized, errors.ErrUnauthorized.ABCICode()},
		"wrapped error":       {errors.Wrap(errors.ErrOverflow, "amount"), errors.ErrOverflow.ABCICode()},
		"double wrapped code": {errors.Wrap(errors.Wrap(errors.ErrNotFound, "a"), "b"), errors.ErrNotFound.ABCICode()},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := weave.DeliverTxError(tc.err, false)
			assert.Equal(t, tc.code, dres.Code)
			assert.Contains(t, dres.Log, "cannot deliver tx")

			cres := weave.CheckTxError(tc.err, false)
			assert.Equal(t, tc.code, cres.Code)
			assert.Contains(t, cres.Log, "cannot check tx")
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := weave.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	c := weave.NewCheck(1234, "check")
	ac := c.ToABCI()
	assert.Equal(t, int64(1234), ac.GasWanted)
	assert.Equal(t, "check", ac.Log)
}

func TestDeliverResultTags(t *testing.T) {
	dres := weave.DeliverResult{
		Events: []weave.Event{
			demoEvent{
				name: "FundsSent",
				attrs: []common.KVPair{
					{Key: []byte("recipient"), Value: []byte("A")},
					{Key: []byte("amount"), Value: []byte("50")},
				},
			},
			demoEvent{name: "Empty"},
		},
	}

	want := []common.KVPair{
		{Key: []byte("action"), Value: []byte("FundsSent")},
		{Key: []byte("FundsSent.recipient"), Value: []byte("A")},
		{Key: []byte("FundsSent.amount"), Value: []byte("50")},
		{Key: []byte("action"), Value: []byte("Empty")},
	}
	assert.Equal(t, want, dres.ToABCI().Tags)
}

func TestOrError(t *testing.T) {
	res := weave.DeliverOrError(&weave.DeliverResult{Log: "ok"}, nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, "ok", res.Log)

	res = weave.DeliverOrError(nil, errors.ErrEmpty, false)
	assert.Equal(t, errors.ErrEmpty.ABCICode(), res.Code)

	cres := weave.CheckOrError(nil, errors.ErrMsg, false)
	assert.Equal(t, errors.ErrMsg.ABCICode(), cres.Code)
}
