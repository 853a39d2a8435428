/*
Package x contains the extensions running on the ledger.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the application.
The system extension keeps native balances, the token extension
keeps mints and token accounts and the escrow extension swaps
tokens between two parties through a vault owned by an offer.
*/
package x
