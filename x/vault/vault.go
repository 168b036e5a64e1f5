package vault

import (
	"github.com/lockboxlabs/swaplock"
)

// VaultCondition is the condition one owner's vault in one asset derives
// from. The vault owns its holding under this address and signs with the
// condition when paying out.
func VaultCondition(owner, asset swaplock.Address) swaplock.Condition {
	data := make([]byte, 0, len(owner)+len(asset))
	data = append(data, owner...)
	data = append(data, asset...)
	return swaplock.NewCondition("vault", "hold", data)
}

// VaultAddress is the account holding one owner's vaulted asset.
func VaultAddress(owner, asset swaplock.Address) swaplock.Address {
	return VaultCondition(owner, asset).Address()
}
