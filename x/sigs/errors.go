package sigs

import (
	"github.com/iov-one/tlfund/errors"
)

// x/sigs reserves 120~129.
var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the expected value.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
