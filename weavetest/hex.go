package weavetest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/iov-one/weave-splitter"
)

// RandomAddr returns a valid, random account address.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()
	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return mustValid(t, raw)
}

// DecodeAddr returns the account address of a plain hex string, as used in
// genesis files and in the splitter command line.
func DecodeAddr(t testing.TB, encoded string) weave.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode %q address: %s", encoded, err)
	}
	return mustValid(t, raw)
}

// ParseAddress returns the account address of any of the formats accepted by
// weave.ParseAddress (hex, cond or bech32, optionally prefixed).
func ParseAddress(t testing.TB, encoded string) weave.Address {
	t.Helper()
	addr, err := weave.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return mustValid(t, addr)
}

func mustValid(t testing.TB, raw []byte) weave.Address {
	t.Helper()
	a := weave.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("not a valid account address: %s", err)
	}
	return a
}
