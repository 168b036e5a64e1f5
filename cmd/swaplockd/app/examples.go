package app

import (
	"github.com/lockboxlabs/swaplock/commands"
	"github.com/lockboxlabs/swaplock/crypto"
	"github.com/lockboxlabs/swaplock/x/escrow"
	"github.com/lockboxlabs/swaplock/x/funds"
	"github.com/lockboxlabs/swaplock/x/sigs"
	"github.com/lockboxlabs/swaplock/x/token"
)

// Examples generates some example structs to dump out with testgen.
func Examples() []commands.Example {
	wallet := &funds.Wallet{Balance: 50000}

	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	user := &sigs.UserData{
		Pubkey:   pub,
		Sequence: 17,
	}

	maker := pub.Address()
	gold := token.AssetID("GOLD")
	iron := token.AssetID("IRON")

	holding := &token.Holding{
		Owner:  maker,
		Asset:  gold,
		Amount: 250,
	}

	msg := &escrow.MakeMsg{
		Maker:       maker,
		AssetA:      gold,
		AssetB:      iron,
		DealNonce:   1,
		OfferAmount: 100,
		AskAmount:   50,
	}
	call, err := escrow.EncodeInstruction(msg)
	if err != nil {
		panic(err)
	}

	record := &escrow.Escrow{
		Maker:     maker,
		AssetA:    gold,
		AssetB:    iron,
		DealNonce: 1,
		AskAmount: 50,
		Proof:     255,
	}

	unsigned := Tx{
		Sum: &Tx_EscrowCall{EscrowCall: call},
	}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "priv_key", Obj: priv},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "holding", Obj: holding},
		{Filename: "make_msg", Obj: msg},
		{Filename: "escrow", Obj: record},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
