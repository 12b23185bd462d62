package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

const sampleTOML = `
is_ethereum = false
data_allowed = true
contract_details = true

[[tokens]]
address = "0xcccccccccccccccccccccccccccccccccccccc"
ticker = "cUSD"
decimals = 18

[[tokens]]
address = "0xdddddddddddddddddddddddddddddddddddddd"
ticker = "cEUR"
decimals = 18
`

func TestConfig_DecodeAndDerive(t *testing.T) {
	cfg := Default()
	if _, err := toml.Decode(sampleTOML, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.IsEthereum {
		t.Fatal("expected Celo mode")
	}
	pol := cfg.Policy()
	if !pol.DataAllowed || !pol.ContractDetails {
		t.Fatalf("got %+v", pol)
	}

	table, err := cfg.TokenTable()
	if err != nil {
		t.Fatalf("TokenTable: %v", err)
	}
	addr := make([]byte, 20)
	for i := range addr {
		addr[i] = 0xcc
	}
	tok, ok := table.Lookup(addr)
	if !ok || tok.Ticker != "cUSD" {
		t.Fatalf("got %+v, ok=%v", tok, ok)
	}
}

func TestDefault_IsConservative(t *testing.T) {
	d := Default()
	if d.ContractDetails {
		t.Fatal("default should not decode raw contract calls")
	}
	if !d.DataAllowed {
		t.Fatal("default should still allow data by default")
	}
}
