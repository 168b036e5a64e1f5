package swaptest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/lockboxlabs/swaplock"
)

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) swaplock.Address {
	raw := make([]byte, swaplock.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := swaplock.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}

// DecodeAddr takes a hex encoded address string and returns its raw
// representation. This function ensures that the returned value is a valid
// address.
func DecodeAddr(t testing.TB, encoded string) swaplock.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := swaplock.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}

// ParseAddress takes an address in any of the supported human readable
// formats (hex, bech32 or a condition) and returns its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) swaplock.Address {
	t.Helper()

	addr, err := swaplock.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
