package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/gconf"
	"github.com/iov-one/weave-splitter/x/cash"
	"github.com/iov-one/weave-splitter/x/splitter"
)

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an account.
`)
		fl.PrintDefaults()
	}
	var (
		sf     = flStore(fl)
		addrFl = flAddress(fl, "address", "", "Address of the account.")
	)
	fl.Parse(args)

	if err := addrFl.Validate(); err != nil {
		flagDie("invalid address: %s", err)
	}

	return view(sf, func(db weave.ReadOnlyKVStore) error {
		balance, err := cash.NewController().Balance(db, *addrFl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, balance)
		return err
	})
}

func cmdRecipients(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all registered recipients together with their weights, in the order
deposits are split, followed by the total weight.
`)
		fl.PrintDefaults()
	}
	var (
		sf = flStore(fl)
	)
	fl.Parse(args)

	return view(sf, func(db weave.ReadOnlyKVStore) error {
		entries, err := splitter.Recipients(db)
		if err != nil {
			return err
		}
		total, err := splitter.TotalWeight(db)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(output, "%s\t%d\n", e.Address, e.Weight)
		}
		_, err = fmt.Fprintf(output, "total\t%d\n", total)
		return err
	})
}

func cmdShare(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the share of an ordered pair of recipients. Zero is printed for a pair
that was never set.
`)
		fl.PrintDefaults()
	}
	var (
		sf   = flStore(fl)
		r1Fl = flAddress(fl, "recipient1", "", "Address of the first recipient.")
		r2Fl = flAddress(fl, "recipient2", "", "Address of the second recipient.")
	)
	fl.Parse(args)

	return view(sf, func(db weave.ReadOnlyKVStore) error {
		share, err := splitter.GetPairShare(db, *r1Fl, *r2Fl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, share)
		return err
	})
}

func cmdConfig(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the splitter configuration.
`)
		fl.PrintDefaults()
	}
	var (
		sf = flStore(fl)
	)
	fl.Parse(args)

	return view(sf, func(db weave.ReadOnlyKVStore) error {
		var conf splitter.Configuration
		switch err := gconf.Load(db, "splitter", &conf); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			conf.Remainder = splitter.RemainderToSender
		default:
			return err
		}
		if conf.Remainder == "" {
			conf.Remainder = splitter.RemainderToSender
		}
		_, err := fmt.Fprintf(output, "remainder\t%s\n", conf.Remainder)
		return err
	})
}

// view runs fn against the latest committed local application state.
func view(sf storeFlags, fn func(weave.ReadOnlyKVStore) error) error {
	exec, cleanup, err := openExecutor(sf, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	return exec.View(fn)
}
