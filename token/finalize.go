package token

import (
	"github.com/celotx/celotx/metrics"
	"github.com/celotx/celotx/txtypes"
)

// NativeTicker and NativeDecimals describe the chain's native coin, used
// whenever a transaction's feeCurrency field is absent.
const (
	NativeTicker   = "CELO"
	NativeDecimals = 18
)

// ResolveFeeCurrency maps content's feeCurrency address to a ticker and
// decimal count for display, falling back to the native coin when the
// field was absent, the finalizeParsing fee-currency branch.
func ResolveFeeCurrency(table *Table, content *txtypes.Content) (ticker string, decimals uint8, err error) {
	if !content.FeeCurrency.Present() {
		return NativeTicker, NativeDecimals, nil
	}
	tok, ok := table.Lookup(content.FeeCurrency.Bytes())
	if !ok {
		metrics.TokenUnknownFeeCurrency.Inc()
		return "", 0, ErrUnknownToken
	}
	return tok.Ticker, tok.Decimals, nil
}

// FinalizeToken rewrites content's destination and value in place from a
// recognized transfer() call's embedded arguments, and reports the token
// that was transferred. It must be called exactly once after the
// transaction finishes, before the parser.Context (and the State it was
// built with) is discarded or reset; it is a no-op if the DATA field was
// never recognized as a token transfer. Mirrors finalizeParsing's
// tokenProvisioned branch.
func FinalizeToken(table *Table, state *State, content *txtypes.Content) (Token, bool) {
	if state == nil || !state.tokenProvisioned {
		return Token{}, false
	}
	tok, ok := table.Lookup(content.Destination.Bytes())
	if !ok {
		return Token{}, false
	}

	recipient := state.tokenData[4+12 : 4+32]
	amount := state.tokenData[4+32 : 4+64]

	content.Destination.Length = txtypes.AddressLength
	copy(content.Destination.Value[:], recipient)
	content.Value.Length = txtypes.MaxInt256Length
	copy(content.Value.Value[:], amount)
	content.DataPresent = false

	return tok, true
}
