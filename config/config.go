// Package config loads the host-side policy and token table a celotx
// parser runs with from a TOML file, scoped to what a transaction parser
// actually needs: no datadir/P2P/RPC surface, just parsing policy plus
// the fixed set of tokens it is allowed to recognize.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/celotx/celotx/token"
)

// TokenEntry is one [[tokens]] table entry in the config file.
type TokenEntry struct {
	Address  string `toml:"address"`
	Ticker   string `toml:"ticker"`
	Decimals uint8  `toml:"decimals"`
}

// Config is the full on-disk shape of a celotx policy file.
type Config struct {
	// IsEthereum selects Ethereum-style field ordering (no
	// feeCurrency/gatewayTo/gatewayFee) instead of Celo's.
	IsEthereum bool `toml:"is_ethereum"`
	// DataAllowed, ContractDetails mirror token.Policy.
	DataAllowed     bool `toml:"data_allowed"`
	ContractDetails bool `toml:"contract_details"`

	Tokens []TokenEntry `toml:"tokens"`
}

// Default returns the conservative configuration a fresh install ships
// with: Celo field ordering, data accepted but never decoded, no tokens
// provisioned.
func Default() Config {
	return Config{
		IsEthereum:      false,
		DataAllowed:     true,
		ContractDetails: false,
	}
}

// Load reads and parses a TOML policy file from path.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Policy extracts the token.Policy portion of cfg.
func (cfg Config) Policy() token.Policy {
	return token.Policy{DataAllowed: cfg.DataAllowed, ContractDetails: cfg.ContractDetails}
}

// TokenTable builds a token.Table from cfg's [[tokens]] entries.
func (cfg Config) TokenTable() (*token.Table, error) {
	tokens := make([]token.Token, 0, len(cfg.Tokens))
	for _, e := range cfg.Tokens {
		addr, err := token.ParseAddress(e.Address)
		if err != nil {
			return nil, fmt.Errorf("config: token %q: %w", e.Ticker, err)
		}
		tokens = append(tokens, token.Token{Address: addr, Ticker: e.Ticker, Decimals: e.Decimals})
	}
	return token.NewTable(tokens), nil
}
