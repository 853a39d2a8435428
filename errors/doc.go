/*
Package errors implements registered error codes for the ledger.

Reuse as many errors from this package as possible and define custom package
errors only when absolutely necessary. Extensions register their own codes
using Register(code, description) during program initialization.

Code stands for the ABCI error code, which allows to distinguish types of
errors on the client side and act accordingly. A client that receives a code
and a log can rebuild a comparable error using ABCIError.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of creation to ensure a stacktrace is attached. If you wrap multiple times,
only the first wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
