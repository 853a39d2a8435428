/*
Package system keeps native lamport balances of all addresses.

Every account that holds state must keep a minimum lamport balance, the rent
exemption deposit, that depends on the size of the state. The deposit is
paid by the creator of an account and returned to a destination chosen by
the owner once the account is closed.

Transaction fees, a fixed amount of lamports per signature, are charged from
the main signer and moved to the fee collector.
*/
package system
