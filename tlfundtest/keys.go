package tlfundtest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() tlfund.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random address genearted on the fly.
func RandomAddr(t testing.TB) tlfund.Address {
	t.Helper()
	raw := make([]byte, tlfund.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return tlfund.Address(raw)
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) tlfund.Address {
	t.Helper()

	addr, err := tlfund.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
