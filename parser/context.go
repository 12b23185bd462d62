package parser

import (
	"github.com/celotx/celotx/hash"
	"github.com/celotx/celotx/rlp"
	"github.com/celotx/celotx/txtypes"
)

// Status is the result of one ProcessTx/ContinueTx call.
type Status int

const (
	// StatusProcessing means the current fragment was exhausted before
	// the transaction finished; feed more bytes via ContinueTx.
	StatusProcessing Status = iota
	// StatusSuspended means a custom processor yielded control back to
	// the caller mid-field (e.g. to let a UI render something). The next
	// ContinueTx call resumes exactly where it left off.
	StatusSuspended
	// StatusFinished means the transaction was fully and validly parsed.
	StatusFinished
	// StatusFault means the stream is malformed or violates a field
	// constraint. The context must not be reused without Reset.
	StatusFault
)

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "PROCESSING"
	case StatusSuspended:
		return "SUSPENDED"
	case StatusFinished:
		return "FINISHED"
	case StatusFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// CustomStatus is returned by a CustomProcessor on each invocation.
type CustomStatus int

const (
	// NotHandled means the state machine should perform default field
	// dispatch this iteration.
	NotHandled CustomStatus = iota
	// Handled means the processor consumed some or all of the remaining
	// payload itself; the state machine re-enters its loop.
	Handled
	// CustomSuspended bubbles StatusSuspended up to the caller.
	CustomSuspended
	// CustomFault bubbles StatusFault up to the caller.
	CustomFault
)

// CustomProcessor is invoked once per state-machine iteration while a field
// is active, with the context passed so it can inspect currentField /
// currentFieldLength / currentFieldPos and consume bytes via CopyTxData.
// It must be idempotent across suspension: resuming and being invoked
// again must reproduce the same consumption pattern as an uninterrupted
// stream would have produced.
type CustomProcessor interface {
	Process(ctx *Context) (CustomStatus, error)
}

// Context is the full resumable state of one transaction parse. It is
// created once via Init/NewContext and mutated only by ProcessTx and
// ContinueTx; Reset returns it to its just-initialized state so a host can
// reuse the allocation across transactions (mirroring the original
// reset_app_context's in-place memset).
type Context struct {
	currentField Field
	isEthereum   bool

	currentFieldLength uint32
	currentFieldPos    uint32
	currentFieldIsList bool
	fieldSingleByte    bool
	processingField    bool

	dataLength uint32

	rlpBuffer    [rlp.MaxHeaderLength]byte
	rlpBufferPos int

	// workBuffer is borrowed from the caller for the duration of a single
	// ProcessTx call; it is never retained across calls (reset to nil in
	// Reset, and replaced wholesale at the top of ProcessTx). bufPos is
	// the index of the next unread byte; kept as an index rather than
	// reslicing workBuffer on every read so the single-byte self-encoded
	// case (§4.4 step 5) can rewind the cursor by one byte.
	workBuffer    []byte
	bufPos        int
	commandLength int

	content   *txtypes.Content
	hasher    hash.Hasher
	processor CustomProcessor

	// Extra is an opaque side channel a custom processor can use to carry
	// its own state (e.g. the token package's TokenContext) without the
	// parser package needing to know its shape.
	Extra interface{}

	err error
}

// NewContext allocates and initializes a Context. hasher and content must
// be non-nil; processor and extra may be nil if no custom processor is
// installed.
func NewContext(hasher hash.Hasher, content *txtypes.Content, processor CustomProcessor, isEthereum bool, extra interface{}) *Context {
	ctx := &Context{}
	ctx.Init(hasher, content, processor, isEthereum, extra)
	return ctx
}

// Init (re)initializes ctx in place: zero the struct, install
// collaborators, set currentField = CONTENT.
func (ctx *Context) Init(hasher hash.Hasher, content *txtypes.Content, processor CustomProcessor, isEthereum bool, extra interface{}) {
	*ctx = Context{}
	ctx.hasher = hasher
	ctx.content = content
	ctx.processor = processor
	ctx.isEthereum = isEthereum
	ctx.Extra = extra
	ctx.currentField = FieldContent
}

// Reset reinitializes ctx with the same collaborators it was first given,
// so a host can parse another transaction without reallocating. It is
// equivalent to calling Init again with the same arguments.
func (ctx *Context) Reset() {
	ctx.Init(ctx.hasher, ctx.content, ctx.processor, ctx.isEthereum, ctx.Extra)
}

// Err returns the sentinel error that produced the most recent
// StatusFault, or nil if the context never faulted.
func (ctx *Context) Err() error { return ctx.err }

// CurrentField returns the field currently being decoded.
func (ctx *Context) CurrentField() Field { return ctx.currentField }

// CurrentFieldLength returns the declared payload length of the active field.
func (ctx *Context) CurrentFieldLength() uint32 { return ctx.currentFieldLength }

// CurrentFieldPos returns how many payload bytes of the active field have
// been consumed so far.
func (ctx *Context) CurrentFieldPos() uint32 { return ctx.currentFieldPos }

// CommandLength returns the number of bytes remaining in the current
// fragment.
func (ctx *Context) CommandLength() int { return ctx.commandLength }

// Peek returns up to n bytes from the front of the current fragment
// without consuming them. It is used by custom processors that need to
// inspect bytes (e.g. a function selector) before deciding how to handle
// them; it never advances the cursor or feeds the hasher.
func (ctx *Context) Peek(n int) []byte {
	if n > ctx.commandLength {
		n = ctx.commandLength
	}
	return ctx.workBuffer[ctx.bufPos : ctx.bufPos+n]
}

// Content returns the output struct fields are written into.
func (ctx *Context) Content() *txtypes.Content { return ctx.content }

// Hasher returns the running hash the context feeds as it consumes the
// stream. Callers finalize it (Sum32) only once parsing reaches
// StatusFinished; calling it earlier returns a digest of a transaction
// that is still being hashed, which is meaningless.
func (ctx *Context) Hasher() hash.Hasher { return ctx.hasher }

// FinishField clears processingField and advances currentField by one. A
// custom processor calls this once it has consumed a field's payload in
// full (currentFieldPos == currentFieldLength); it is the same state
// transition the default field handlers perform internally.
func (ctx *Context) FinishField() {
	ctx.processingField = false
	ctx.currentField++
}
