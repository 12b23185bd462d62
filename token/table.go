// Package token recognizes ERC-20 transfer() calls inside a transaction's
// DATA field and resolves fee-currency addresses to display metadata, the
// two jobs celo.c's customProcessor and finalizeParsing perform against a
// fixed on-device token table.
package token

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
)

// Token describes one recognized ERC-20 contract: the ticker and decimal
// count a host uses to render amounts, keyed by contract address.
type Token struct {
	Address  [20]byte
	Ticker   string
	Decimals uint8
}

// ErrUnknownToken is returned by Table lookups that find no match.
var ErrUnknownToken = errors.New("token: address not in table")

// Table is a fixed set of known token contracts, analogous to the
// tmpCtx.transactionContext.tokens[MAX_TOKEN] array the original firmware
// provisions from the host before a transaction is parsed.
type Table struct {
	byAddress map[[20]byte]Token
}

// NewTable builds a Table from a list of tokens. A later entry with the
// same address silently replaces an earlier one, matching the original's
// sequential-slot provisioning where whatever is loaded last wins.
func NewTable(tokens []Token) *Table {
	t := &Table{byAddress: make(map[[20]byte]Token, len(tokens))}
	for _, tok := range tokens {
		t.byAddress[tok.Address] = tok
	}
	return t
}

// Lookup returns the token registered at addr, the getKnownToken logic.
func (t *Table) Lookup(addr []byte) (Token, bool) {
	if t == nil || len(addr) != 20 {
		return Token{}, false
	}
	var key [20]byte
	copy(key[:], addr)
	tok, ok := t.byAddress[key]
	return tok, ok
}

// ParseAddress decodes a 0x-prefixed or bare hex address string, the shape
// a TOML config file or CLI flag would supply it in.
func ParseAddress(s string) ([20]byte, error) {
	var out [20]byte
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 20 {
		return out, errors.New("token: address must be 20 bytes")
	}
	copy(out[:], b)
	return out, nil
}

// transferSelector is the 4-byte keccak256("transfer(address,uint256)")
// selector, TOKEN_TRANSFER_ID in the original firmware.
var transferSelector = [4]byte{0xa9, 0x05, 0x9c, 0xbb}

// isTransferSelector reports whether the first 4 bytes of data are the
// ERC-20 transfer() selector.
func isTransferSelector(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], transferSelector[:])
}
