package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/app"
	"github.com/iov-one/weave-splitter/crypto"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/weavetest"
	"github.com/iov-one/weave-splitter/weavetest/assert"
	"github.com/iov-one/weave-splitter/x/cash"
	"github.com/iov-one/weave-splitter/x/sigs"
	"github.com/iov-one/weave-splitter/x/splitter"
)

const chainID = "splitter-test"

func TestApp(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	rootKey := weavetest.NewKey()
	alice := weavetest.NewKey()
	r1 := weavetest.RandomAddr(t)
	r2 := weavetest.RandomAddr(t)
	r3 := weavetest.RandomAddr(t)

	var events weave.EventLog
	exec, err := NewExecutor(db, &events, nil)
	assert.Nil(t, err)
	assert.Nil(t, exec.InitChain(genesis(t, rootKey, map[string]interface{}{
		"cash": []interface{}{
			map[string]interface{}{"address": address(alice), "balance": 1000},
		},
		"splitter": map[string]interface{}{
			"recipients": []interface{}{
				map[string]interface{}{"address": r1, "weight": 1},
				map[string]interface{}{"address": r2, "weight": 1},
			},
		},
	}), Initializers()))

	// Deposit is split equally between the two registered recipients.
	deposit := signedTx(t, exec, alice, &splitter.ReceiveFundsMsg{Amount: 100})
	res := exec.DeliverTx(context.TODO(), deposit)
	if res.Code != 0 {
		t.Fatalf("deposit failed: %s", res.Log)
	}
	assertBalance(t, exec, address(alice), 900)
	assertBalance(t, exec, r1, 50)
	assertBalance(t, exec, r2, 50)
	if got := len(events.Events()); got != 3 {
		t.Fatalf("want 3 events, got %d", got)
	}

	// Replaying the same signed transaction is not possible.
	events.Reset()
	res = exec.DeliverTx(context.TODO(), deposit)
	if res.Code != sigs.ErrInvalidSequence.ABCICode() {
		t.Fatalf("want invalid sequence, got %d: %s", res.Code, res.Log)
	}
	assertBalance(t, exec, address(alice), 900)
	if got := len(events.Events()); got != 0 {
		t.Fatalf("failed call emitted %d events", got)
	}

	// Only root can change the registry.
	_, err = exec.Deliver(context.TODO(), signed(t, exec, alice, &splitter.UpdateRecipientMsg{Recipient: r3, Shares: 2}))
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized error, got %+v", err)
	}
	_, err = exec.Deliver(context.TODO(), signed(t, exec, rootKey, &splitter.UpdateRecipientMsg{Recipient: r3, Shares: 2}))
	assert.Nil(t, err)
	assert.Equal(t, []weave.Event{splitter.RecipientUpdated{Recipient: r3}}, events.Events())

	// Unsigned deposit cannot be attributed to anyone.
	_, err = exec.Deliver(context.TODO(), &Tx{Msg: &splitter.ReceiveFundsMsg{Amount: 10}})
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized error, got %+v", err)
	}

	// With weights 1, 1 and 2 a deposit of 10 leaves a remainder of 1 with
	// the sender.
	_, err = exec.Deliver(context.TODO(), signed(t, exec, alice, &splitter.ReceiveFundsMsg{Amount: 10}))
	assert.Nil(t, err)
	assertBalance(t, exec, address(alice), 900-9)
	assertBalance(t, exec, r3, 5)

	// Change the remainder policy and observe the first recipient getting
	// the remainder.
	_, err = exec.Deliver(context.TODO(), signed(t, exec, rootKey, &splitter.UpdateConfigurationMsg{
		Patch: &splitter.Configuration{Remainder: splitter.RemainderToFirst},
	}))
	assert.Nil(t, err)
	_, err = exec.Deliver(context.TODO(), signed(t, exec, alice, &splitter.ReceiveFundsMsg{Amount: 10}))
	assert.Nil(t, err)
	assertBalance(t, exec, address(alice), 900-9-10)

	if h := exec.Height(); h != 6 {
		t.Fatalf("want height 6, got %d", h)
	}
}

func TestTxSerialization(t *testing.T) {
	key := weavetest.NewKey()
	tx := &Tx{Msg: &splitter.UpdateShareMsg{
		Recipient1: weavetest.RandomAddr(t),
		Recipient2: weavetest.RandomAddr(t),
		Share:      3,
	}}
	sig, err := sigs.SignTx(key, tx, chainID, 4)
	assert.Nil(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)
	assert.Equal(t, tx, decoded)

	// Signature covers the message only.
	signBytes, err := decoded.(*Tx).GetSignBytes()
	assert.Nil(t, err)
	want, err := (&Tx{Msg: tx.Msg}).Marshal()
	assert.Nil(t, err)
	assert.Equal(t, want, signBytes)

	if _, err := TxDecoder(nil); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func genesis(t testing.TB, root crypto.PrivateKeyEd25519, state map[string]interface{}) app.Genesis {
	t.Helper()
	state["conf"] = map[string]interface{}{
		"sigs": map[string]interface{}{"root": address(root)},
	}
	opts := make(weave.Options)
	for name, v := range state {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("cannot serialize %q genesis: %s", name, err)
		}
		opts[name] = raw
	}
	return app.Genesis{ChainID: chainID, AppState: opts}
}

func address(key crypto.PrivateKeyEd25519) weave.Address {
	return key.Public().Address()
}

// signed returns a transaction carrying given message, signed with the
// next sequence of the key owner.
func signed(t testing.TB, exec *app.Executor, key crypto.PrivateKeyEd25519, msg weave.Msg) *Tx {
	t.Helper()
	var seq int64
	err := exec.View(func(db weave.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextSequence(db, address(key))
		return err
	})
	assert.Nil(t, err)

	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(key, tx, exec.ChainID(), seq)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx
}

func signedTx(t testing.TB, exec *app.Executor, key crypto.PrivateKeyEd25519, msg weave.Msg) []byte {
	t.Helper()
	raw, err := signed(t, exec, key, msg).Marshal()
	assert.Nil(t, err)
	return raw
}

func assertBalance(t testing.TB, exec *app.Executor, addr weave.Address, want uint64) {
	t.Helper()
	err := exec.View(func(db weave.ReadOnlyKVStore) error {
		got, err := cash.NewController().Balance(db, addr)
		if err != nil {
			return err
		}
		if got != want {
			t.Errorf("balance of %s: want %d, got %d", addr, want, got)
		}
		return nil
	})
	assert.Nil(t, err)
}
