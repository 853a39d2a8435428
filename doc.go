/*
Package ledger defines interfaces used throughout the app, such as: storage,
transactions, handlers etc. It also contains helpers to work with context,
addresses, account encoding and abci.

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, header).

Accounts are addressed by ed25519 public keys or by program derived addresses
that fall off the curve. A program derived address has no private key, so only
the program that knows the seeds can act on behalf of it.
*/
package ledger
