/*
Package timelock implements time locked funds.

A depositor locks an amount of a single asset for a beneficiary. The
beneficiary can redeem the whole amount once the unlock time is reached.

Every fund lives at an address derived from the depositor and a seed chosen
by the depositor, so the same seed cannot be used twice. The locked units
are held by a custody account derived from the fund address. The custody
account is controlled by the vault authority, an identity derived from a
constant tag for which no private key exists. Only the redeem handler of
this package can authorize transfers on its behalf.

Redeemed funds are not removed. A fund is redeemed when its custody account
is empty, which also makes a repeated redeem fail.
*/
package timelock
