package parser

import "github.com/celotx/celotx/metrics"

// readByte consumes one byte from the current fragment, charging it to the
// active field's position (if any) and to the hasher, except in the
// single-byte self-encoded case where the byte was already hashed during
// header pre-decode (see decodeHeader). Returns ErrUnderflow if the
// fragment is empty.
func (ctx *Context) readByte() (byte, error) {
	if ctx.commandLength < 1 {
		return 0, ErrUnderflow
	}
	b := ctx.workBuffer[ctx.bufPos]
	ctx.bufPos++
	ctx.commandLength--
	if ctx.processingField {
		ctx.currentFieldPos++
	}
	if !(ctx.processingField && ctx.fieldSingleByte) {
		ctx.hasher.Update([]byte{b})
		metrics.BytesHashed.Inc()
	}
	return b, nil
}

// unreadByte rewinds the cursor by a single byte, undoing the bookkeeping
// readByte performed (but not the hash update: the one caller of this, the
// self-encoded single-byte header case, never hashed that byte as payload
// in the first place, so there is nothing to unwind there). It must only
// be called immediately after a matching readByte with no hashing done in
// between.
func (ctx *Context) unreadByte() {
	ctx.bufPos--
	ctx.commandLength++
	if ctx.processingField {
		ctx.currentFieldPos--
	}
}

// copyOut consumes n bytes from the current fragment, optionally copying
// them into out (out may be nil to discard, e.g. for fields that must be
// hashed but not retained). Same hashing/cursor discipline as readByte.
func (ctx *Context) copyOut(out []byte, n int) error {
	if ctx.commandLength < n {
		return ErrUnderflow
	}
	chunk := ctx.workBuffer[ctx.bufPos : ctx.bufPos+n]
	if out != nil {
		copy(out, chunk)
	}
	if !(ctx.processingField && ctx.fieldSingleByte) {
		ctx.hasher.Update(chunk)
		metrics.BytesHashed.Add(int64(n))
	}
	ctx.bufPos += n
	ctx.commandLength -= n
	if ctx.processingField {
		ctx.currentFieldPos += uint32(n)
	}
	return nil
}

// CopyTxData is the cursor operation exposed to custom processors: consume
// n bytes from the current fragment, optionally retaining them in out. It
// is exactly copyOut, exported so processors outside this package can
// drive the cursor themselves.
func (ctx *Context) CopyTxData(out []byte, n int) error {
	return ctx.copyOut(out, n)
}
