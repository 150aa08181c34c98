package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/cmd/splitter/app"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Address {
	var a weave.Address
	if defaultVal != "" {
		var err error
		a, err = weave.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q weave.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagAddress)(&a), name, usage)
	return &a
}

type flagAddress weave.Address

func (a flagAddress) String() string {
	if len(a) == 0 {
		return ""
	}
	return weave.Address(a).String()
}

func (a *flagAddress) Set(raw string) error {
	addr, err := weave.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagAddress(addr)
	return nil
}

// flagDie terminates the program when a flag is invalid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}

// storeFlags registers flags shared by all commands that access the local
// application state.
type storeFlags struct {
	home    *string
	backend *string
	logLvl  *string
}

func flStore(fl *flag.FlagSet) storeFlags {
	return storeFlags{
		home: fl.String("home", env("SPLITTER_HOME", os.Getenv("HOME")+"/.splitter"),
			"Directory holding the application state. You can use SPLITTER_HOME environment variable to set it."),
		backend: fl.String("store", env("SPLITTER_STORE", app.BackendBolt),
			"Storage engine of the application state, either bolt or iavl. You can use SPLITTER_STORE environment variable to set it."),
		logLvl: fl.String("log", env("SPLITTER_LOG", "error"),
			"Logging level, for example info or *:error,splitter:debug. You can use SPLITTER_LOG environment variable to set it."),
	}
}

// flKey registers the private key file location flag.
func flKey(fl *flag.FlagSet) *string {
	return fl.String("key", env("SPLITTER_PRIV_KEY", os.Getenv("HOME")+"/.splitter.priv.key"),
		"Path to the private key file that transaction should be signed with. You can use SPLITTER_PRIV_KEY environment variable to set it.")
}
