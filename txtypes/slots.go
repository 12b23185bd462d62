// Package txtypes defines the fixed-size output slots the parser writes
// into as it consumes a transaction: bounded big-endian integers and
// 20-byte addresses, each paired with the length actually observed.
package txtypes

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// MaxInt256Length is the longest byte length an int256 slot accepts.
	MaxInt256Length = 32
	// AddressLength is the fixed length of an address slot when present.
	AddressLength = 20
	// MaxVLength is the longest byte length the EIP-155 V field accepts.
	MaxVLength = 4
)

// Int256Slot holds a bounded big-endian unsigned integer of at most 32
// bytes: gasprice, startgas, value, and gatewayFee all use this shape.
// Only the low Length bytes of Value are meaningful; bytes are written
// left-padded within Value exactly as spec'd (copy starts at
// Value[currentFieldPos:]).
type Int256Slot struct {
	Value  [MaxInt256Length]byte
	Length uint8
}

// Bytes returns the slot's meaningful bytes, unpadded.
func (s Int256Slot) Bytes() []byte { return s.Value[:s.Length] }

// Uint256 materializes the slot as a *uint256.Int. It performs no decimal
// formatting (that remains an external collaborator's job); it just gives
// callers the geth-idiomatic 256-bit integer type instead of raw bytes.
func (s Int256Slot) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(s.Bytes())
}

// Hex renders the slot's meaningful bytes as a 0x-prefixed hex string.
func (s Int256Slot) Hex() string { return "0x" + hex.EncodeToString(s.Bytes()) }

// AddressSlot holds a 20-byte address with a presence length of 0 or 20:
// destination, gatewayDestination, and feeCurrency all use this shape.
type AddressSlot struct {
	Value  [AddressLength]byte
	Length uint8
}

// Present reports whether the slot carries an address (Length == 20) as
// opposed to being absent (Length == 0, e.g. a contract-creation "to").
func (s AddressSlot) Present() bool { return s.Length == AddressLength }

// Bytes returns the address bytes, or nil if the slot is absent.
func (s AddressSlot) Bytes() []byte {
	if !s.Present() {
		return nil
	}
	return s.Value[:]
}

// Hex renders the address as a 0x-prefixed hex string, or "" if absent.
func (s AddressSlot) Hex() string {
	if !s.Present() {
		return ""
	}
	return "0x" + hex.EncodeToString(s.Value[:])
}

// String implements fmt.Stringer for debugging/log output.
func (s AddressSlot) String() string {
	if !s.Present() {
		return "<absent>"
	}
	return s.Hex()
}

var _ fmt.Stringer = AddressSlot{}

// Content is the full set of semantic fields the parser extracts, the
// output of one completed parse.
type Content struct {
	GasPrice   Int256Slot
	StartGas   Int256Slot
	Value      Int256Slot
	GatewayFee Int256Slot

	Destination        AddressSlot
	GatewayDestination AddressSlot
	FeeCurrency        AddressSlot

	V       [MaxVLength]byte
	VLength uint8

	// DataPresent is set as soon as the DATA field's declared length is
	// observed to be nonzero, regardless of what the custom processor
	// does with the bytes.
	DataPresent bool
}

// Reset zeroes the content in place so a Context can be reused across
// transactions without reallocating it.
func (c *Content) Reset() { *c = Content{} }
