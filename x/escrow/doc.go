/*
Package escrow implements a bilateral token swap.

A maker offers an amount of one token in exchange for an amount of another.
The offered tokens are locked in a vault, a token account owned by the offer
record itself. The offer record lives at an address derived from the maker and
an offer id chosen by the maker, so anyone can locate an offer and its vault
without an index.

Any taker can accept an offer. The wanted tokens go to the maker, the vault
content goes to the taker and both the vault and the record are removed. The
maker can instead close the offer and get the vault content back. Rent
deposits of both accounts always return to the maker.

An offer has no expiration. Once taken or closed, any further attempt to
resolve it fails with ErrOfferNotFound.
*/
package escrow
