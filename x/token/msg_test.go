package token

import (
	"testing"

	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func TestValidateCreateAssetMsg(t *testing.T) {
	issuer := swaptest.NewCondition().Address()

	cases := map[string]struct {
		msg     *CreateAssetMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &CreateAssetMsg{Ticker: "GOLD", Issuer: issuer},
		},
		"ticker too short": {
			msg:     &CreateAssetMsg{Ticker: "GO", Issuer: issuer},
			wantErr: errors.ErrInput,
		},
		"ticker too long": {
			msg:     &CreateAssetMsg{Ticker: "GOLDGOLD", Issuer: issuer},
			wantErr: errors.ErrInput,
		},
		"lowercase ticker": {
			msg:     &CreateAssetMsg{Ticker: "gold", Issuer: issuer},
			wantErr: errors.ErrInput,
		},
		"missing issuer": {
			msg:     &CreateAssetMsg{Ticker: "GOLD"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestValidateMintMsg(t *testing.T) {
	dest := swaptest.NewCondition().Address()
	gold := AssetID("GOLD")

	cases := map[string]struct {
		msg     *MintMsg
		wantErr *errors.Error
	}{
		"valid message": {
			msg: &MintMsg{Asset: gold, Dest: dest, Amount: 5},
		},
		"zero amount": {
			msg:     &MintMsg{Asset: gold, Dest: dest},
			wantErr: errors.ErrAmount,
		},
		"missing asset": {
			msg:     &MintMsg{Dest: dest, Amount: 5},
			wantErr: errors.ErrInput,
		},
		"truncated destination": {
			msg:     &MintMsg{Asset: gold, Dest: dest[:9], Amount: 5},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
