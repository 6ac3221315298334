/*
Package x contains the extensions of the fund application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
the application.

This package holds the Authenticator abstraction that all extensions use
to learn who authorized the current transaction. Sub-packages implement
signature verification (sigs), token accounts (token), the time-locked
fund escrow (timelock) and generic decorators (utils).
*/
package x
