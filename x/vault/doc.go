// Package vault implements a personal single asset lockup. A deposit
// moves part of a holding into a vault only its owner can open again, a
// withdraw empties the vault in one go. There is no counterparty and no
// record of its own, a vault is nothing but a holding owned by an address
// derived from the owner and the asset.
package vault
