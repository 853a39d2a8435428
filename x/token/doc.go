/*
Package token implements fungible tokens.

A Mint defines a token and who may create new units of it. Units are held in
token accounts, each bound to a single mint and owned by a single authority.
The authority can be a human key or a program derived address, in which case
only the program owning the derivation can move the tokens.

Every mint and token account is backed by a native account holding its rent
exemption deposit. Closing an empty token account returns that deposit.
*/
package token
