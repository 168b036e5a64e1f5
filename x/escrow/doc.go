/*
Package escrow implements a three instruction deal machine.

A maker opens a deal with Make: an offered quantity of asset A is locked
in a custody holding owned by an address derived from the maker and a
deal nonce, and a fixed width record binds the deal parameters. A taker
settles with Take: the ask is paid in asset B to the maker and the full
custody balance is released to the taker. The maker can cancel with
Refund and reclaim the custody balance. Take and Refund both erase the
record and return its storage deposit to the maker.

Instructions arrive as raw bytes opening with a one byte numeric tag and
are routed by DecodeInstruction. Every handler recomputes the escrow
derivation and compares each claimed identity against the stored record
before any state changes.
*/
package escrow
