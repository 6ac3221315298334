package timelock

import "github.com/iov-one/tlfund/errors"

// ErrInsufficientRedeemTime is returned when a fund is redeemed before its
// unlock time.
var ErrInsufficientRedeemTime = errors.Register(100, "Redeem time has not been reached")
