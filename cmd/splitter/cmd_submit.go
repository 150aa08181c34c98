package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/x/splitter"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and execute it
against the local application state.

Every event emitted by a successful execution is written out, one per line.
A failed execution does not change the state.
`)
		fl.PrintDefaults()
	}
	var (
		sf = flStore(fl)
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	var events weave.EventLog
	exec, cleanup, err := openExecutor(sf, weave.MultiEmitter{&events, weave.LoggingEmitter{}})
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := exec.Deliver(context.Background(), tx)
	if err != nil {
		return fmt.Errorf("cannot deliver transaction: %s", err)
	}
	for _, e := range events.Events() {
		fmt.Fprintln(output, formatEvent(e))
	}
	if _, ok := tx.Msg.(*splitter.ReceiveFundsMsg); ok && len(res.Data) != 0 {
		var d splitter.Distribution
		if err := d.Unmarshal(res.Data); err != nil {
			return fmt.Errorf("cannot decode distribution: %s", err)
		}
		fmt.Fprintf(output, "remainder %d returned to %s\n", d.Remainder, d.RemainderTo)
	}
	return nil
}

// formatEvent returns a single line representation of an event.
func formatEvent(e weave.Event) string {
	var b strings.Builder
	b.WriteString(e.EventName())
	for _, a := range e.Attributes() {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	return b.String()
}
