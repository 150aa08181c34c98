package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/cmd/splitter/app"
	"github.com/iov-one/weave-splitter/weavetest"
	"github.com/iov-one/weave-splitter/weavetest/assert"
	"github.com/iov-one/weave-splitter/x/splitter"
)

func TestReadWriteTx(t *testing.T) {
	var buf bytes.Buffer
	txs := []*app.Tx{
		{Msg: &splitter.ReceiveFundsMsg{Amount: 5}},
		{Msg: &splitter.UpdateRecipientMsg{Recipient: weavetest.RandomAddr(t), Shares: 2}},
	}
	for _, tx := range txs {
		_, err := writeTx(&buf, tx)
		assert.Nil(t, err)
	}
	// Transactions can be streamed one after another.
	for _, want := range txs {
		got, _, err := readTx(&buf)
		assert.Nil(t, err)
		assert.Equal(t, want.Msg, got.Msg)
	}
	if _, _, err := readTx(&buf); err == nil {
		t.Fatal("want an error reading from an empty stream")
	}
}

func TestPipeline(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()
	home := filepath.Join(dir, "home")
	rootKey := filepath.Join(dir, "root.key")
	aliceKey := filepath.Join(dir, "alice.key")

	mustRun(t, cmdKeygen, nil, "-key", rootKey)
	mustRun(t, cmdKeygen, nil, "-key", aliceKey)
	alice := keyAddress(t, aliceKey)
	r1 := weave.Address(bytes.Repeat([]byte{1}, weave.AddressLength))
	r2 := weave.Address(bytes.Repeat([]byte{2}, weave.AddressLength))

	genesis := fmt.Sprintf(`{
		"chain_id": "splitter-test",
		"app_state": {
			"conf": {"sigs": {"root": "%s"}},
			"cash": [{"address": "%s", "balance": 1000}],
			"splitter": {"recipients": [
				{"address": "%s", "weight": 1},
				{"address": "%s", "weight": 2}
			]}
		}
	}`, keyAddress(t, rootKey), alice, r1, r2)
	genesisPath := filepath.Join(dir, "genesis.json")
	if err := ioutil.WriteFile(genesisPath, []byte(genesis), 0600); err != nil {
		t.Fatalf("cannot write genesis: %s", err)
	}
	mustRun(t, cmdInit, nil, "-home", home, "-genesis", genesisPath)

	storeArgs := []string{"-home", home}

	tx := mustRun(t, cmdReceiveFunds, nil, "-amount", "100")
	tx = mustRun(t, cmdSignTransaction, tx, append(storeArgs, "-key", aliceKey)...)
	out := mustRun(t, cmdSubmitTransaction, tx, storeArgs...)

	wantLines := []string{
		fmt.Sprintf("FundsReceived sender=%s amount=100", alice),
		fmt.Sprintf("FundsSent recipient=%s amount=33", r1),
		fmt.Sprintf("FundsSent recipient=%s amount=66", r2),
		fmt.Sprintf("remainder 1 returned to %s", alice),
	}
	assert.Equal(t, strings.Join(wantLines, "\n")+"\n", string(out))

	balance := mustRun(t, cmdBalance, nil, append(storeArgs, "-address", alice.String())...)
	assert.Equal(t, "901\n", string(balance))

	// Alice is not root and cannot change the registry.
	tx = mustRun(t, cmdUpdateRecipient, nil, "-recipient", r1.String(), "-shares", "5")
	tx = mustRun(t, cmdSignTransaction, tx, append(storeArgs, "-key", aliceKey)...)
	var submitOut bytes.Buffer
	if err := cmdSubmitTransaction(bytes.NewReader(tx), &submitOut, storeArgs); err == nil {
		t.Fatal("alice updated the registry")
	}

	tx = mustRun(t, cmdUpdateRecipient, nil, "-recipient", r1.String(), "-shares", "5")
	tx = mustRun(t, cmdSignTransaction, tx, append(storeArgs, "-key", rootKey)...)
	out = mustRun(t, cmdSubmitTransaction, tx, storeArgs...)
	assert.Equal(t, fmt.Sprintf("RecipientUpdated recipient=%s\n", r1), string(out))

	recipients := mustRun(t, cmdRecipients, nil, storeArgs...)
	assert.Equal(t, fmt.Sprintf("%s\t5\n%s\t2\ntotal\t7\n", r1, r2), string(recipients))

	tx = mustRun(t, cmdUpdateConfig, nil, "-remainder", "first")
	tx = mustRun(t, cmdSignTransaction, tx, append(storeArgs, "-key", rootKey)...)
	mustRun(t, cmdSubmitTransaction, tx, storeArgs...)
	conf := mustRun(t, cmdConfig, nil, storeArgs...)
	assert.Equal(t, "remainder\tfirst\n", string(conf))
}

func TestTransactionView(t *testing.T) {
	tx := mustRun(t, cmdReceiveFunds, nil, "-amount", "42")
	out := mustRun(t, cmdTransactionView, tx)
	if !strings.Contains(string(out), "splitter/ReceiveFundsMsg") {
		t.Fatalf("message type not found in %s", out)
	}
	if !strings.Contains(string(out), `"42"`) {
		t.Fatalf("amount not found in %s", out)
	}
}

// mustRun executes given command with input and returns its output.
func mustRun(
	t testing.TB,
	cmd func(io.Reader, io.Writer, []string) error,
	input []byte,
	args ...string,
) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := cmd(bytes.NewReader(input), &out, args); err != nil {
		t.Fatalf("command failed: %s", err)
	}
	return out.Bytes()
}

func keyAddress(t testing.TB, path string) weave.Address {
	t.Helper()
	key, err := loadKey(path)
	if err != nil {
		t.Fatalf("cannot load key: %s", err)
	}
	return key.Public().Address()
}

// tempDir creates a temporary directory. Returned cleanup function removes
// it together with all its content.
func tempDir(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "splitter-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}
