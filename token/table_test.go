package token

import (
	"encoding/hex"
	"testing"
)

func TestTable_LookupRoundTrip(t *testing.T) {
	addr, err := ParseAddress("0x" + hex.EncodeToString(fill(20, 0xab)))
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	table := NewTable([]Token{{Address: addr, Ticker: "cUSD", Decimals: 18}})

	tok, ok := table.Lookup(addr[:])
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if tok.Ticker != "cUSD" || tok.Decimals != 18 {
		t.Fatalf("got %+v", tok)
	}

	if _, ok := table.Lookup(fill(20, 0x00)); ok {
		t.Fatal("expected lookup of unknown address to fail")
	}
}

func TestTable_LaterEntryWins(t *testing.T) {
	addr := fill(20, 0x01)
	var key [20]byte
	copy(key[:], addr)
	table := NewTable([]Token{
		{Address: key, Ticker: "OLD", Decimals: 6},
		{Address: key, Ticker: "NEW", Decimals: 18},
	})
	tok, ok := table.Lookup(addr)
	if !ok || tok.Ticker != "NEW" {
		t.Fatalf("got %+v, want ticker NEW", tok)
	}
}

func TestParseAddress_RejectsWrongLength(t *testing.T) {
	if _, err := ParseAddress("0xabcd"); err == nil {
		t.Fatal("expected error for short address")
	}
}
