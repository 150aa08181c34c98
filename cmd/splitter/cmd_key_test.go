package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/weave-splitter/crypto/bech32"
)

func TestKeygen(t *testing.T) {
	const mnemonic = `shy else mystery outer define there front bracket dawn honey excuse virus lazy book kiss cannon oven law coconut hedgehog veteran narrow great cage`

	cases := map[string]string{
		"m/44'/234'/0'": "tiov1c3n70dph9m2jepszfmmh84pu75zuga3zrsd7jw",
		"m/44'/234'/1'": "tiov10lzv8v2lds7jvmkdt6t6khmhydr920r2yux8p9",
		"m/44'/234'/2'": "tiov18gwds8rx8cajav3m4lr5j98vlly9n8ms930z2l",
		"m/44'/234'/3'": "tiov1casuhjhjcqlxhlcfpqak5uccpqyajzp0nj3639",
		"m/44'/234'/4'": "tiov16rjld9tw88yrcc954cvvtnern576daunnn8jmn",
	}

	for path, bech := range cases {
		t.Run(path, func(t *testing.T) {
			priv, err := keygen(mnemonic, path)
			if err != nil {
				t.Fatalf("cannot generate key: %s", err)
			}
			got, err := bech32.Encode("tiov", priv.Public().Address())
			if err != nil {
				t.Fatalf("cannot serialize to bech32: %s", err)
			}
			if got != bech {
				t.Logf("want: %s", bech)
				t.Logf(" got: %s", got)
				t.Fatal("unexpected bech address")
			}
		})
	}
}

func TestMnemonic(t *testing.T) {
	cases := map[string]struct {
		mnemonic string
		wantErr  bool
	}{
		"valid mnemonic 12 words": {
			mnemonic: "super bulk plunge better rookie donor reward obscure rescue type trade pelican",
			wantErr:  false,
		},
		"valid mnemonic 24 words": {
			mnemonic: "usage mountain noodle inspire distance lyrics caution wait mansion never announce biology squirrel guess key gain belt same matrix chase mom beyond model toy",
			wantErr:  false,
		},
		"too few words": {
			mnemonic: "super bulk plunge better rookie donor",
			wantErr:  true,
		},
		"additional whitespace around mnemonnic is not allowed (beginning)": {
			mnemonic: " super bulk plunge better rookie donor reward obscure rescue type trade pelican",
			wantErr:  true,
		},
		"additional whitespace around mnemonnic is not allowed (end)": {
			mnemonic: "super bulk plunge better rookie donor reward obscure rescue type trade pelican ",
			wantErr:  true,
		},
		"additional whitespace around mnemonnic is not allowed (middle)": {
			mnemonic: "super bulk plunge better rookie    donor reward obscure rescue type trade pelican",
			wantErr:  true,
		},
		"mnemonnic cannot be tab separated": {
			mnemonic: "super\tbulk plunge better rookie donor reward obscure rescue type trade pelican",
			wantErr:  true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := keygen(tc.mnemonic, "m/44'/234'/0'")
			if hasErr := err != nil; hasErr != tc.wantErr {
				t.Fatalf("returned erorr value: %+v", err)
			}
		})
	}
}

func TestKeygenCmd(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()
	keyPath := filepath.Join(dir, "key")

	var out bytes.Buffer
	if err := cmdKeygen(nil, &out, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("key file not created: %s", err)
	}

	var addr bytes.Buffer
	if err := cmdKeyaddr(nil, &addr, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot read address: %s", err)
	}
	if out.String() != addr.String() {
		t.Fatalf("keygen printed %q, keyaddr printed %q", out.String(), addr.String())
	}

	var bech bytes.Buffer
	if err := cmdKeyaddr(nil, &bech, []string{"-key", keyPath, "-bech32"}); err != nil {
		t.Fatalf("cannot read bech32 address: %s", err)
	}
	if !strings.HasPrefix(bech.String(), "split1") {
		t.Fatalf("unexpected bech32 address %q", bech.String())
	}

	if err := cmdKeygen(nil, &out, []string{"-key", keyPath}); err == nil {
		t.Fatal("existing key file was overwritten")
	}
}
