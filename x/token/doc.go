/*
Package token maintains the registered asset classes and the holding
accounts that keep balances in them.

Assets and holdings are both addressed by derived identities, one way
digests of a condition naming them. An asset is identified by its ticker,
a holding by the owner and asset pair, so anyone can recompute where a
given balance must live without consulting an index.

Transfers out of a holding require an Authority, an explicit capability
naming the account being debited. It is obtained either from a signature
on the transaction or from a condition the calling extension controls,
which is how program owned accounts spend without any private key.
*/
package token
