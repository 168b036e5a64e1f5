package escrow

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
	"github.com/lockboxlabs/swaplock/swaptest"
)

func blockAddr(b byte) swaplock.Address {
	return bytes.Repeat([]byte{b}, swaplock.AddressLength)
}

func TestEscrowRecordLayout(t *testing.T) {
	esc := &Escrow{
		Maker:     blockAddr(0xAA),
		AssetA:    blockAddr(0xBB),
		AssetB:    blockAddr(0xCC),
		DealNonce: 7,
		AskAmount: 50,
		Proof:     255,
	}
	raw, err := esc.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, recordSize)

	want := []byte{recordTag}
	want = append(want, blockAddr(0xAA)...)
	want = append(want, blockAddr(0xBB)...)
	want = append(want, blockAddr(0xCC)...)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 7)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 50)
	want = append(want, 255)
	assert.Equal(t, want, raw)

	var loaded Escrow
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, esc, &loaded)
}

func TestEscrowRecordUnmarshalErrors(t *testing.T) {
	esc := &Escrow{
		Maker:     blockAddr(0xAA),
		AssetA:    blockAddr(0xBB),
		AssetB:    blockAddr(0xCC),
		DealNonce: 1,
		AskAmount: 2,
		Proof:     254,
	}
	raw, err := esc.Marshal()
	require.NoError(t, err)

	cases := map[string][]byte{
		"empty":         {},
		"truncated":     raw[:recordSize-1],
		"trailing byte": append(append([]byte{}, raw...), 0),
		"wrong tag":     append([]byte{0x7F}, raw[1:]...),
	}
	for testName, data := range cases {
		t.Run(testName, func(t *testing.T) {
			var e Escrow
			if err := e.Unmarshal(data); !errors.ErrInput.Is(err) {
				t.Fatalf("want a malformed input error, got %+v", err)
			}
		})
	}
}

func TestMakeInstructionLayout(t *testing.T) {
	msg := &MakeMsg{
		Maker:       blockAddr(0xAA),
		AssetA:      blockAddr(0xBB),
		AssetB:      blockAddr(0xCC),
		DealNonce:   1,
		OfferAmount: 100,
		AskAmount:   50,
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, makeWireSize)

	want := []byte{0x00}
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 1)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 50)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 100)
	want = append(want, blockAddr(0xAA)...)
	want = append(want, blockAddr(0xBB)...)
	want = append(want, blockAddr(0xCC)...)
	assert.Equal(t, want, raw)

	decoded, err := DecodeInstruction(raw)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestTakeInstructionRoundTrip(t *testing.T) {
	msg := &TakeMsg{
		Taker:         blockAddr(0x11),
		Maker:         blockAddr(0xAA),
		EscrowAddress: blockAddr(0xEE),
		AssetA:        blockAddr(0xBB),
		AssetB:        blockAddr(0xCC),
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, takeWireSize)
	assert.Equal(t, byte(0x01), raw[0])

	decoded, err := DecodeInstruction(raw)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestRefundInstructionRoundTrip(t *testing.T) {
	msg := &RefundMsg{
		Maker:         blockAddr(0xAA),
		EscrowAddress: blockAddr(0xEE),
		AssetA:        blockAddr(0xBB),
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, refundWireSize)
	assert.Equal(t, byte(0x02), raw[0])

	decoded, err := DecodeInstruction(raw)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestDecodeInstructionErrors(t *testing.T) {
	take, err := (&TakeMsg{
		Taker:         blockAddr(0x11),
		Maker:         blockAddr(0xAA),
		EscrowAddress: blockAddr(0xEE),
		AssetA:        blockAddr(0xBB),
		AssetB:        blockAddr(0xCC),
	}).Marshal()
	require.NoError(t, err)

	cases := map[string]struct {
		data    []byte
		wantErr *errors.Error
	}{
		"empty": {
			data:    nil,
			wantErr: errors.ErrInput,
		},
		"unknown tag": {
			data:    []byte{0x03, 0, 0, 0},
			wantErr: ErrUnknownInstruction,
		},
		"truncated take": {
			data:    take[:10],
			wantErr: errors.ErrInput,
		},
		"take with trailing garbage": {
			data:    append(append([]byte{}, take...), 0xFF),
			wantErr: errors.ErrInput,
		},
		"refund sized as take": {
			data:    append([]byte{tagRefund}, take[1:]...),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, err := DecodeInstruction(tc.data); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestEncodeInstruction(t *testing.T) {
	msg := &RefundMsg{
		Maker:         blockAddr(0xAA),
		EscrowAddress: blockAddr(0xEE),
		AssetA:        blockAddr(0xBB),
	}
	raw, err := EncodeInstruction(msg)
	require.NoError(t, err)

	decoded, err := DecodeInstruction(raw)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)

	if _, err := EncodeInstruction(&swaptest.Msg{}); !ErrUnknownInstruction.Is(err) {
		t.Fatalf("want an unknown instruction error, got %+v", err)
	}
}

func TestConfigurationRoundTrip(t *testing.T) {
	conf := Configuration{RecordRent: 7}
	raw, err := conf.Marshal()
	require.NoError(t, err)

	var loaded Configuration
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, conf, loaded)

	// the zero rent is not serialized at all
	empty, err := (&Configuration{}).Marshal()
	require.NoError(t, err)
	assert.Empty(t, empty)
}
