package escrow

import (
	"encoding/binary"

	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// The escrow record is persisted in a binding fixed width layout. Every
// field sits at a fixed offset and the total size never varies:
//
//	record tag    1 byte
//	maker        20 bytes
//	asset_a      20 bytes
//	asset_b      20 bytes
//	deal_nonce    8 bytes, big endian
//	ask_amount    8 bytes, big endian
//	proof         1 byte
//
// There is no offered quantity field. The custody holding balance is the
// offer, a stored copy could only disagree with it.

const recordTag = 0x01

var recordSize = 1 + 3*swaplock.AddressLength + 8 + 8 + 1

// Escrow is the persistent record of one open deal. It exists from Make
// until Take or Refund erase it and is stored under the address derived
// from (maker, deal_nonce, proof).
type Escrow struct {
	Maker     swaplock.Address
	AssetA    swaplock.Address
	AssetB    swaplock.Address
	DealNonce uint64
	AskAmount uint64
	Proof     uint8
}

// Marshal encodes the record into its fixed width layout.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, recordSize)
	out = append(out, recordTag)
	out = append(out, e.Maker...)
	out = append(out, e.AssetA...)
	out = append(out, e.AssetB...)
	out = appendUint64(out, e.DealNonce)
	out = appendUint64(out, e.AskAmount)
	out = append(out, e.Proof)
	return out, nil
}

// Unmarshal decodes the fixed width layout, rejecting any size or tag
// deviation.
func (e *Escrow) Unmarshal(data []byte) error {
	if len(data) != recordSize {
		return errors.Wrapf(errors.ErrInput, "record of %d bytes", len(data))
	}
	if data[0] != recordTag {
		return errors.Wrapf(errors.ErrInput, "record tag %d", data[0])
	}
	e.Maker = cutAddress(data[1:21])
	e.AssetA = cutAddress(data[21:41])
	e.AssetB = cutAddress(data[41:61])
	e.DealNonce = binary.BigEndian.Uint64(data[61:69])
	e.AskAmount = binary.BigEndian.Uint64(data[69:77])
	e.Proof = data[77]
	return nil
}

// MakeMsg opens a deal: it locks OfferAmount of AssetA from the maker in
// custody, to be released against AskAmount of AssetB.
type MakeMsg struct {
	Maker       swaplock.Address
	AssetA      swaplock.Address
	AssetB      swaplock.Address
	DealNonce   uint64
	OfferAmount uint64
	AskAmount   uint64
}

// TakeMsg settles a deal: the taker pays the ask and receives the full
// custody balance. Every identity is checked against the stored record and
// the recomputed derivation before anything moves.
type TakeMsg struct {
	Taker         swaplock.Address
	Maker         swaplock.Address
	EscrowAddress swaplock.Address
	AssetA        swaplock.Address
	AssetB        swaplock.Address
}

// RefundMsg cancels a deal: the maker reclaims the custody balance. Only
// the maker stored in the record may do this.
type RefundMsg struct {
	Maker         swaplock.Address
	EscrowAddress swaplock.Address
	AssetA        swaplock.Address
}

// Configuration is the state of the escrow package that can be set on
// chain initialization.
type Configuration struct {
	// RecordRent is the storage deposit for one escrow record, charged to
	// the maker on Make and returned to the maker when the record is
	// erased.
	RecordRent uint64 `json:"record_rent"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	out := []byte{}
	out = appendUvarintField(out, 0x8, c.RecordRent)
	return out, nil
}

func (c *Configuration) Unmarshal(data []byte) error {
	*c = Configuration{}
	var err error
	for len(data) > 0 {
		switch header := data[0]; header {
		case 0x8:
			c.RecordRent, data, err = cutUvarintField(data[1:])
		default:
			err = errors.Wrapf(errors.ErrInput, "unexpected field header %d", header)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func appendUint64(out []byte, val uint64) []byte {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], val)
	return append(out, scratch[:]...)
}

func cutAddress(data []byte) swaplock.Address {
	return append(swaplock.Address{}, data...)
}

// appendUvarintField writes a varint field, skipping the zero value the same
// way proto3 does.
func appendUvarintField(out []byte, header byte, val uint64) []byte {
	if val == 0 {
		return out
	}
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], val)
	out = append(out, header)
	return append(out, scratch[:n]...)
}

// cutUvarintField parses the varint that follows a field header and returns
// the bytes after it.
func cutUvarintField(data []byte) (uint64, []byte, error) {
	val, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, nil, errors.Wrap(errors.ErrInput, "invalid varint")
	}
	return val, data[n:], nil
}
