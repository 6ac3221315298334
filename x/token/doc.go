/*
Package token implements fungible assets held in token accounts.

Every account is bound to a single asset type and to an authority, the
address that must authorize moving funds out of it. Both bindings are set
when the account is created and never change.

An owner can hold one associated account per asset. Its address is derived
from the owner and the asset ticker, so it can be computed by anyone
without looking at the state.
*/
package token
