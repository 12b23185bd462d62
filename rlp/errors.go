// Package rlp implements the prefix-only RLP pre-decoder used by the
// streaming transaction parser: deciding whether a length header is
// complete, and if so what it says, without ever holding more than a
// handful of header bytes at a time.
package rlp

import "errors"

var (
	// ErrZeroLengthOfLength is returned when a long-form header declares a
	// length-of-length of zero, which is never canonical.
	ErrZeroLengthOfLength = errors.New("rlp: long-form header with zero length-of-length")

	// ErrNonCanonicalLength is returned when a multi-byte length begins with
	// a leading zero byte (it should have been encoded shorter, or even as
	// a short-form header).
	ErrNonCanonicalLength = errors.New("rlp: non-canonical multi-byte length")
)
