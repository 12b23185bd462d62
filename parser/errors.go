package parser

import "errors"

// Sentinel errors, one per spec error category (§7). All are fatal: the
// state machine maps every one of them to StatusFault, and the context
// must be discarded or Reset after any of them.
var (
	// ErrUnderflow is returned when more bytes are requested than the
	// current fragment provides in a context that forbids waiting.
	ErrUnderflow = errors.New("parser: buffer underflow")

	// ErrRLPEncoding covers non-canonical length headers, over-long
	// headers, and list/scalar kind mismatches.
	ErrRLPEncoding = errors.New("parser: invalid RLP encoding")

	// ErrFieldLength is returned when a declared field length exceeds the
	// permitted maximum, or fails an exact-length constraint (addresses).
	ErrFieldLength = errors.New("parser: field length violation")

	// ErrPolicy is returned when the data field is present but host
	// policy forbids it, or the fee currency is unknown.
	ErrPolicy = errors.New("parser: policy violation")

	// ErrLogic is returned for states the parser's own invariants should
	// have made unreachable (e.g. the header staging buffer filling up
	// without becoming decidable).
	ErrLogic = errors.New("parser: internal logic error")
)
