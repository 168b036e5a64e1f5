package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock/swaptest"
	"github.com/lockboxlabs/swaplock/x/token"
)

func TestVaultAddress(t *testing.T) {
	owner := swaptest.NewCondition().Address()
	other := swaptest.NewCondition().Address()
	gold := token.AssetID("GOLD")
	iron := token.AssetID("IRON")

	addr := VaultAddress(owner, gold)
	require.NoError(t, addr.Validate())
	assert.Equal(t, addr, VaultAddress(owner, gold))

	// both the owner and the asset select the vault
	assert.NotEqual(t, addr, VaultAddress(other, gold))
	assert.NotEqual(t, addr, VaultAddress(owner, iron))

	// the vault is an account of its own, not the owner
	assert.NotEqual(t, owner, addr)

	// the condition the vault signs with resolves to the same account
	assert.Equal(t, addr, VaultCondition(owner, gold).Address())
}

func TestDepositMsgRoundTrip(t *testing.T) {
	msg := &DepositMsg{
		Owner:  swaptest.NewCondition().Address(),
		Asset:  token.AssetID("GOLD"),
		Amount: 30,
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)

	var loaded DepositMsg
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, msg, &loaded)
}

func TestWithdrawMsgRoundTrip(t *testing.T) {
	msg := &WithdrawMsg{
		Owner: swaptest.NewCondition().Address(),
		Asset: token.AssetID("GOLD"),
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)

	var loaded WithdrawMsg
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, msg, &loaded)
}
