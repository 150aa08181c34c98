package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-splitter/cmd/splitter/app"
	"github.com/iov-one/weave-splitter/x/splitter"
)

func cmdReceiveFunds(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for depositing funds that are split between all
registered recipients proportionally to their weights.

The signer of the transaction is the sender of the funds.
`)
		fl.PrintDefaults()
	}
	var (
		amountFl = fl.Uint64("amount", 0, "Amount that is split between the recipients.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &splitter.ReceiveFundsMsg{Amount: *amountFl},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdUpdateRecipient(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for setting the weight of a recipient. A recipient is
registered if not known yet. Setting a weight to zero keeps the recipient
registered.

This transaction must be signed by the root account.
`)
		fl.PrintDefaults()
	}
	var (
		recipientFl = flAddress(fl, "recipient", "", "Address of the recipient.")
		sharesFl    = fl.Uint("shares", 1, "Weight of the recipient.")
	)
	fl.Parse(args)

	if err := recipientFl.Validate(); err != nil {
		flagDie("invalid recipient address: %s", err)
	}
	shares, err := toUint32(*sharesFl)
	if err != nil {
		flagDie("invalid shares: %s", err)
	}

	tx := &app.Tx{
		Msg: &splitter.UpdateRecipientMsg{
			Recipient: *recipientFl,
			Shares:    shares,
		},
	}
	_, err = writeTx(output, tx)
	return err
}

func cmdUpdateShare(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for setting the share of an ordered pair of recipients.
Pair shares are informational and are not used to split deposits.

This transaction must be signed by the root account.
`)
		fl.PrintDefaults()
	}
	var (
		r1Fl    = flAddress(fl, "recipient1", "", "Address of the first recipient.")
		r2Fl    = flAddress(fl, "recipient2", "", "Address of the second recipient.")
		shareFl = fl.Uint("share", 0, "Share value of the pair.")
	)
	fl.Parse(args)

	share, err := toUint32(*shareFl)
	if err != nil {
		flagDie("invalid share: %s", err)
	}

	tx := &app.Tx{
		Msg: &splitter.UpdateShareMsg{
			Recipient1: *r1Fl,
			Recipient2: *r2Fl,
			Share:      share,
		},
	}
	_, err = writeTx(output, tx)
	return err
}

func cmdUpdateConfig(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for updating the splitter configuration.

This transaction must be signed by the root account.
`)
		fl.PrintDefaults()
	}
	var (
		remainderFl = fl.String("remainder", string(splitter.RemainderToSender),
			"Who receives the remainder of a deposit, either sender or first.")
	)
	fl.Parse(args)

	patch := &splitter.Configuration{Remainder: splitter.RemainderPolicy(*remainderFl)}
	if err := patch.Validate(); err != nil {
		flagDie("invalid configuration: %s", err)
	}

	tx := &app.Tx{
		Msg: &splitter.UpdateConfigurationMsg{Patch: patch},
	}
	_, err := writeTx(output, tx)
	return err
}

func toUint32(n uint) (uint32, error) {
	if uint64(n) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("%d does not fit into 32 bits", n)
	}
	return uint32(n), nil
}
