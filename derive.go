package tlfund

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/tlfund/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a program address can be
	// derived from, including the bump.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32

	// ProgramAddressType is the condition type of all program derived
	// identities.
	ProgramAddressType = "pda"

	pdaMarker = "ProgramDerivedAddress"
)

// ProgramAddress is an identity derived from a program name and a list of
// seeds. No private key exists for it, so only the program that knows the
// seeds can act on its behalf.
type ProgramAddress struct {
	Program string
	Bump    uint8
	// Digest is the off curve hash the condition is built from.
	Digest []byte
}

// Condition returns the condition that represents this identity.
func (p ProgramAddress) Condition() Condition {
	return NewCondition(p.Program, ProgramAddressType, p.Digest)
}

// Address returns the address of this identity.
func (p ProgramAddress) Address() Address {
	return p.Condition().Address()
}

// CreateProgramAddress computes the identity owned by the program for given
// seeds and bump. It fails with ErrInput when the seeds exceed the limits and
// with ErrState when the digest is a valid ed25519 point and therefore cannot
// be used.
func CreateProgramAddress(program string, bump uint8, seeds ...[]byte) (ProgramAddress, error) {
	if len(seeds)+1 > MaxSeeds {
		return ProgramAddress{}, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLen {
			return ProgramAddress{}, errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(program))
	_, _ = h.Write([]byte(pdaMarker))
	digest := h.Sum(nil)

	if onCurve(digest) {
		return ProgramAddress{}, errors.Wrap(errors.ErrState, "program address on curve")
	}
	return ProgramAddress{Program: program, Bump: bump, Digest: digest}, nil
}

// DeriveAddress finds the first viable program address for given seeds,
// starting with bump 255 and counting down.
func DeriveAddress(program string, seeds ...[]byte) (ProgramAddress, error) {
	for bump := 255; bump >= 0; bump-- {
		p, err := CreateProgramAddress(program, uint8(bump), seeds...)
		switch {
		case err == nil:
			return p, nil
		case errors.ErrState.Is(err):
			continue
		default:
			return ProgramAddress{}, err
		}
	}
	return ProgramAddress{}, errors.Wrap(errors.ErrState, "no viable bump")
}

// onCurve returns true if given 32 bytes decode as an ed25519 point.
func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
