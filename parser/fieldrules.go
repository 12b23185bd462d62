package parser

import "github.com/celotx/celotx/txtypes"

// fieldRule describes one scalar field's validation and storage: the
// generic shape shared by nonce, gasprice, startgas, feeCurrency,
// gatewayTo, gatewayFee, to, value, v, data, r and s, factored out of the
// fifteen near-identical processXxx functions the original implementation
// wrote out by hand.
type fieldRule struct {
	// unbounded disables the maxLength check entirely (data/r/s: the
	// original imposes no upper bound on these beyond the list check).
	unbounded bool
	maxLength uint32
	// exactLengths, when non-nil, replaces the maxLength check with a
	// membership check (to/gatewayTo: must be absent or exactly 20 bytes).
	exactLengths []uint32
	// dest returns the slice payload bytes are copied into; nil discards
	// them (nonce, data, r, s all do this).
	dest func(ctx *Context) []byte
	// finish runs once the field's payload has been fully consumed,
	// recording the observed length alongside the bytes dest wrote.
	finish func(ctx *Context, length uint32)
}

func lengthAllowed(rule fieldRule, length uint32) bool {
	if rule.exactLengths != nil {
		for _, l := range rule.exactLengths {
			if length == l {
				return true
			}
		}
		return false
	}
	if rule.unbounded {
		return true
	}
	return length <= rule.maxLength
}

// runGeneric drives one iteration of a scalar field's consumption: it may
// be called multiple times across fragment boundaries for the same field,
// picking up at whatever currentFieldPos was left at.
func (ctx *Context) runGeneric(rule fieldRule) error {
	if ctx.currentFieldIsList {
		return ErrRLPEncoding
	}
	if !lengthAllowed(rule, ctx.currentFieldLength) {
		return ErrFieldLength
	}
	if ctx.currentFieldPos < ctx.currentFieldLength {
		remaining := ctx.currentFieldLength - ctx.currentFieldPos
		copySize := uint32(ctx.commandLength)
		if copySize > remaining {
			copySize = remaining
		}
		var out []byte
		if rule.dest != nil {
			out = rule.dest(ctx)[ctx.currentFieldPos:]
		}
		if err := ctx.copyOut(out, int(copySize)); err != nil {
			return err
		}
	}
	if ctx.currentFieldPos == ctx.currentFieldLength {
		if rule.finish != nil {
			rule.finish(ctx, ctx.currentFieldLength)
		}
		ctx.FinishField()
	}
	return nil
}

var (
	ruleNonce = fieldRule{maxLength: txtypes.MaxInt256Length}

	ruleGasPrice = fieldRule{
		maxLength: txtypes.MaxInt256Length,
		dest:      func(ctx *Context) []byte { return ctx.content.GasPrice.Value[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.GasPrice.Length = uint8(l) },
	}

	ruleStartGas = fieldRule{
		maxLength: txtypes.MaxInt256Length,
		dest:      func(ctx *Context) []byte { return ctx.content.StartGas.Value[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.StartGas.Length = uint8(l) },
	}

	ruleFeeCurrency = fieldRule{
		maxLength: txtypes.AddressLength,
		dest:      func(ctx *Context) []byte { return ctx.content.FeeCurrency.Value[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.FeeCurrency.Length = uint8(l) },
	}

	ruleGatewayTo = fieldRule{
		exactLengths: []uint32{0, txtypes.AddressLength},
		dest:         func(ctx *Context) []byte { return ctx.content.GatewayDestination.Value[:] },
		finish:       func(ctx *Context, l uint32) { ctx.content.GatewayDestination.Length = uint8(l) },
	}

	ruleGatewayFee = fieldRule{
		maxLength: txtypes.MaxInt256Length,
		dest:      func(ctx *Context) []byte { return ctx.content.GatewayFee.Value[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.GatewayFee.Length = uint8(l) },
	}

	ruleTo = fieldRule{
		exactLengths: []uint32{0, txtypes.AddressLength},
		dest:         func(ctx *Context) []byte { return ctx.content.Destination.Value[:] },
		finish:       func(ctx *Context, l uint32) { ctx.content.Destination.Length = uint8(l) },
	}

	ruleValue = fieldRule{
		maxLength: txtypes.MaxInt256Length,
		dest:      func(ctx *Context) []byte { return ctx.content.Value.Value[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.Value.Length = uint8(l) },
	}

	ruleV = fieldRule{
		maxLength: txtypes.MaxVLength,
		dest:      func(ctx *Context) []byte { return ctx.content.V[:] },
		finish:    func(ctx *Context, l uint32) { ctx.content.VLength = uint8(l) },
	}

	// ruleDiscard backs data, r and s: none of the three are retained by
	// the parser core (data is only inspected by a custom processor via
	// Peek/CopyTxData; r and s are only there to be hashed).
	ruleDiscard = fieldRule{unbounded: true}
)
