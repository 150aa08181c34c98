package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/store"
	"github.com/iov-one/weave-splitter/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{"address": "0102030405060708090A0B0C0D0E0F1011121314", "balance": 50},
			{"address": "hex:1112131415161718191A1B1C1D1E1F2021222324", "balance": 7}
		]
	}`
	var opts weave.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController()
	a := weavetest.DecodeAddr(t, "0102030405060708090A0B0C0D0E0F1011121314")
	got, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), got)

	b := weavetest.ParseAddress(t, "hex:1112131415161718191A1B1C1D1E1F2021222324")
	got, err = ctrl.Balance(db, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)
}

func TestGenesisInvalidAddress(t *testing.T) {
	opts := weave.Options{
		"cash": json.RawMessage(`[{"address": "", "balance": 1}]`),
	}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))
}
