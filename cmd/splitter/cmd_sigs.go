package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input, sign it and write
signed transaction to standard output.

Unless provided, the chain id and the sequence of the signer are read from
the local application state.
`)
		fl.PrintDefaults()
	}
	var (
		sf        = flStore(fl)
		keyPathFl = flKey(fl)
		chainFl   = fl.String("chain", "", "Chain id the signature is created for.")
		seqFl     = fl.Int64("seq", -1, "Sequence value of the signer.")
	)
	fl.Parse(args)

	key, err := loadKey(*keyPathFl)
	if err != nil {
		return err
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	chainID, seq := *chainFl, *seqFl
	if chainID == "" || seq < 0 {
		exec, cleanup, err := openExecutor(sf, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		if chainID == "" {
			chainID = exec.ChainID()
		}
		if seq < 0 {
			err := exec.View(func(db weave.ReadOnlyKVStore) error {
				var err error
				seq, err = sigs.NextSequence(db, key.Public().Address())
				return err
			})
			if err != nil {
				return fmt.Errorf("cannot get sequence: %s", err)
			}
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
