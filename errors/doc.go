/*
Package errors implements the error values shared by all extensions of the
fund application.

Reuse errors declared in this package whenever possible and register custom
package errors only when a client must be able to tell them apart, for
example x/timelock declares ErrInsufficientRedeemTime.

To register a custom error use Register(code, description). To create an
instance use Errxxx.New, Errxxx.Newf or Wrap. The code is the ABCI error code
returned to the client.

The innermost wrap attaches a stack trace. Format with
	%s or %v to get the error message
	%+v to get the message followed by the stack trace
*/
package errors
