package token

import (
	"errors"

	"github.com/celotx/celotx/metrics"
	"github.com/celotx/celotx/parser"
)

var (
	// ErrMissingSelector is returned when the DATA field's first fragment
	// is shorter than 4 bytes, too little to even read a function
	// selector before deciding how to handle the rest.
	ErrMissingSelector = errors.New("token: fragment shorter than a function selector")
	// ErrDataForbidden is returned when a contract call's DATA field is
	// non-empty but Policy.DataAllowed is false.
	ErrDataForbidden = errors.New("token: data field forbidden by policy")
	// ErrInconsistentData is returned when the DATA field's declared
	// length runs out in the middle of a raw-display block, which should
	// be impossible given the field length was already validated.
	ErrInconsistentData = errors.New("token: data field shorter than its own block boundary")
	// ErrNoState is returned when a Context was driven by a Recognizer
	// without a *State installed as its Extra value.
	ErrNoState = errors.New("token: context has no token.State installed")
)

// Recognizer is the parser.CustomProcessor that inspects a transaction's
// DATA field: recognizing a known ERC-20 transfer() call so its
// address/amount can be surfaced as the transaction's real destination and
// value, and otherwise chunking an arbitrary contract-call payload into a
// selector plus 32-byte words for a host to display one at a time,
// ported from celo.c's customProcessor.
type Recognizer struct {
	Table  *Table
	Policy Policy
}

// NewRecognizer returns a Recognizer over the given token table and policy.
func NewRecognizer(table *Table, policy Policy) *Recognizer {
	return &Recognizer{Table: table, Policy: policy}
}

// Process implements parser.CustomProcessor.
func (r *Recognizer) Process(ctx *parser.Context) (parser.CustomStatus, error) {
	if ctx.CurrentField() != parser.FieldData || ctx.CurrentFieldLength() == 0 {
		return parser.NotHandled, nil
	}

	content := ctx.Content()
	if !content.Destination.Present() {
		// A new-contract deployment's constructor args are never decoded,
		// but policy still governs whether they may be present at all.
		if !r.Policy.DataAllowed {
			metrics.DataFieldForbidden.Inc()
			return parser.CustomFault, ErrDataForbidden
		}
		return parser.NotHandled, nil
	}

	st, ok := ctx.Extra.(*State)
	if !ok || st == nil {
		return parser.CustomFault, ErrNoState
	}

	if ctx.CurrentFieldPos() == 0 {
		if ctx.CommandLength() < 4 {
			return parser.CustomFault, ErrMissingSelector
		}
		_, known := r.Table.Lookup(content.Destination.Bytes())
		st.tokenProvisioned = ctx.CurrentFieldLength() == tokenDataSize &&
			isTransferSelector(ctx.Peek(4)) &&
			known
		if st.tokenProvisioned {
			metrics.TokenProvisioned.Inc()
		}
	}

	if st.tokenProvisioned {
		return r.consumeToken(ctx, st)
	}
	return r.consumeRaw(ctx, st)
}

// consumeToken copies the recognized transfer() payload into st.tokenData
// for later decoding by Finalize, deferring entirely to the default field
// advance once the 68-byte payload is complete.
func (r *Recognizer) consumeToken(ctx *parser.Context, st *State) (parser.CustomStatus, error) {
	pos := ctx.CurrentFieldPos()
	if pos < ctx.CurrentFieldLength() {
		remaining := ctx.CurrentFieldLength() - pos
		copySize := uint32(ctx.CommandLength())
		if copySize > remaining {
			copySize = remaining
		}
		if err := ctx.CopyTxData(st.tokenData[pos:], int(copySize)); err != nil {
			return parser.CustomFault, err
		}
	}
	if ctx.CurrentFieldPos() == ctx.CurrentFieldLength() {
		ctx.FinishField()
	}
	return parser.Handled, nil
}

// consumeRaw chunks an unrecognized DATA payload into a 4-byte selector
// followed by 32-byte words, suspending once per complete chunk so a host
// can render it before resuming.
func (r *Recognizer) consumeRaw(ctx *parser.Context, st *State) (parser.CustomStatus, error) {
	fieldPos := ctx.CurrentFieldPos()
	var blockSize uint32
	if fieldPos == 0 {
		if !r.Policy.DataAllowed {
			metrics.DataFieldForbidden.Inc()
			return parser.CustomFault, ErrDataForbidden
		}
		if !r.Policy.ContractDetails {
			return parser.NotHandled, nil
		}
		st.fieldIndex = 0
		st.fieldOffset = 0
		blockSize = 4
	} else {
		if !r.Policy.ContractDetails {
			return parser.NotHandled, nil
		}
		blockSize = 32 - (st.fieldOffset % 32)
	}

	if ctx.CurrentFieldLength()-fieldPos < blockSize {
		return parser.CustomFault, ErrInconsistentData
	}

	copySize := uint32(ctx.CommandLength())
	if copySize > blockSize {
		copySize = blockSize
	}
	if err := ctx.CopyTxData(st.rawBlock[st.fieldOffset:], int(copySize)); err != nil {
		return parser.CustomFault, err
	}
	if ctx.CurrentFieldPos() == ctx.CurrentFieldLength() {
		ctx.FinishField()
	}
	st.fieldOffset += copySize

	if copySize != blockSize {
		// Block not yet complete: nothing to display, wait for more bytes.
		return parser.Handled, nil
	}
	if fieldPos == 0 {
		st.Display = Display{Kind: DisplaySelector}
		copy(st.Display.Selector[:], st.rawBlock[:4])
	} else {
		st.fieldIndex++
		st.Display = Display{Kind: DisplayParameter, Index: st.fieldIndex}
		copy(st.Display.Parameter[:], st.rawBlock[:32])
	}
	st.fieldOffset = 0
	return parser.CustomSuspended, nil
}
