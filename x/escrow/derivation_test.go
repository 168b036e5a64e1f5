package escrow

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func TestDerive(t *testing.T) {
	maker := swaptest.NewCondition().Address()

	addr, proof, err := Derive(maker, 1)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())

	// the same pair always lands on the same address and proof
	again, proofAgain, err := Derive(maker, 1)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, proof, proofAgain)

	// the proof alone reproduces the address without a search
	assert.Equal(t, addr, DeriveWithProof(maker, 1, proof))

	// a different nonce lands elsewhere
	other, _, err := Derive(maker, 2)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	// and so does a different maker
	other, _, err = Derive(swaptest.NewCondition().Address(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)
}

func TestDeriveInvalidMaker(t *testing.T) {
	if _, _, err := Derive(nil, 1); err == nil {
		t.Fatal("derived an address for a nil maker")
	}
	if _, _, err := Derive(swaplock.Address{0xBA, 0xD1}, 1); err == nil {
		t.Fatal("derived an address for a truncated maker")
	}
}

func TestDeriveSkipsReservedAddresses(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 100; i++ {
		maker := swaptest.RandomAddr(t)
		var nonce uint64
		f.Fuzz(&nonce)

		addr, proof, err := Derive(maker, nonce)
		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.NotEqual(t, byte(0), addr[0], "maker %s nonce %d", maker, nonce)
		assert.Equal(t, addr, DeriveWithProof(maker, nonce, proof))

		// the search counts down, every candidate above the proof must
		// have opened with the reserved zero byte
		for p := 255; p > int(proof); p-- {
			skipped := DeriveWithProof(maker, nonce, uint8(p))
			assert.Equal(t, byte(0), skipped[0], "proof %d was not skippable", p)
		}
	}
}

func TestSeedConditionMatchesDerivation(t *testing.T) {
	maker := swaptest.NewCondition().Address()

	addr, proof, err := Derive(maker, 42)
	require.NoError(t, err)

	cond := SeedCondition(maker, 42, proof)
	require.NoError(t, cond.Validate())
	assert.Equal(t, addr, cond.Address())
}

func BenchmarkDerive(b *testing.B) {
	maker := swaplock.NewAddress([]byte("benchmark-maker"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Derive(maker, uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}
