package main

import (
	"crypto/sha512"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/iov-one/weave-splitter/crypto"
	"golang.org/x/crypto/pbkdf2"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When a mnemonic is given, the key is derived from it using the given
derivation path. Otherwise a random key is generated.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl  = flKey(fl)
		mnemonicFl = fl.String("mnemonic", env("SPLITTER_MNEMONIC", ""),
			"Optional mnemonic the key is derived from. You can use SPLITTER_MNEMONIC environment variable to set it.")
		pathFl = fl.String("path", crypto.DefaultDerivationPath, "Derivation path used together with the mnemonic.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var priv crypto.PrivateKeyEd25519
	if *mnemonicFl == "" {
		priv = crypto.GenPrivKeyEd25519()
	} else {
		var err error
		priv, err = keygen(*mnemonicFl, *pathFl)
		if err != nil {
			return fmt.Errorf("cannot derive key: %s", err)
		}
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, priv.Public().Address())
	return err
}

// mnemonicRx matches between 12 and 24 lowercase words separated by a single
// space.
var mnemonicRx = regexp.MustCompile(`^[a-z]+( [a-z]+){11,23}$`)

// keygen derives an ed25519 private key from a BIP-39 mnemonic using
// SLIP-0010 derivation along given path.
func keygen(mnemonic, derivationPath string) (crypto.PrivateKeyEd25519, error) {
	if !mnemonicRx.MatchString(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic format")
	}
	seed := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 2048, 64, sha512.New)
	return crypto.DeriveEd25519(seed, derivationPath)
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a hex-address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = flKey(fl)
		bechFl    = fl.Bool("bech32", false, "Print the address using the bech32 format.")
	)
	fl.Parse(args)

	key, err := loadKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.Public().Address()
	if !*bechFl {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := addr.Bech32String()
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}
	_, err = fmt.Fprintln(output, b)
	return err
}
