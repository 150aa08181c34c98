package main

import (
	"flag"
	"fmt"
	"io"

	weaveapp "github.com/iov-one/weave-splitter/app"
	"github.com/iov-one/weave-splitter/cmd/splitter/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the application state using a genesis file.

The genesis file declares the chain id and the initial state of each
extension: the sigs root account, cash balances, the splitter recipients,
pair shares and the remainder policy. A state can be initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		sf        = flStore(fl)
		genesisFl = fl.String("genesis", "", "Path to the genesis file.")
	)
	fl.Parse(args)

	if *genesisFl == "" {
		flagDie("genesis file path is required")
	}
	gen, err := weaveapp.LoadGenesis(*genesisFl)
	if err != nil {
		return fmt.Errorf("cannot load genesis: %s", err)
	}

	exec, cleanup, err := openExecutor(sf, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := exec.InitChain(gen, app.Initializers()); err != nil {
		return fmt.Errorf("cannot initialize chain: %s", err)
	}
	_, err = fmt.Fprintf(output, "chain %s initialized at height %d\n", exec.ChainID(), exec.Height())
	return err
}
