package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/weave-splitter"
	weaveapp "github.com/iov-one/weave-splitter/app"
	"github.com/iov-one/weave-splitter/cmd/splitter/app"
	"github.com/iov-one/weave-splitter/crypto"
	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// writeTx serialize the transaction. First bytes written contain the
// information how much space the transaction takes. Size information is
// required to be able to stream the messages.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*app.Tx, int, error) {
	// When serialized using writeTx function, first bytes contain
	// information about the actual size of the transaction message.
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const txHeaderSize = 4

// newLogger returns a logger writing to stderr, filtered by given level
// definition.
func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "splitter")
	logger, err := flags.ParseLogLevel(level, logger, "error")
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	return logger, nil
}

// openExecutor opens the local application state. Returned cleanup function
// must be called to release the store.
func openExecutor(sf storeFlags, emitter weave.EventEmitter) (*weaveapp.Executor, func(), error) {
	logger, err := newLogger(*sf.logLvl)
	if err != nil {
		return nil, nil, err
	}
	db, err := app.OpenStore(*sf.home, *sf.backend)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open store: %s", err)
	}
	exec, err := app.NewExecutor(db, emitter, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("cannot create executor: %s", err)
	}
	return exec, func() { db.Close() }, nil
}

// loadKey reads a private key file as written by the keygen command.
func loadKey(path string) (crypto.PrivateKeyEd25519, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return crypto.PrivateKeyEd25519(raw), nil
}
