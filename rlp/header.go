package rlp

// Header length-prefix byte ranges, per the RLP specification.
const (
	singleByteMax  = 0x7f
	shortStringMax = 0xb7
	longStringMax  = 0xbf
	shortListMax   = 0xf7

	// MaxHeaderLength is the staging buffer size the parser allocates for
	// header bytes: one length-of-length byte plus up to 4 bytes of
	// length, matching the original Ledger implementation's rlpBuffer[5].
	// No field this parser handles ever declares a length needing a wider
	// length-of-length; a header that would need one is rejected as a
	// buffer-overflow logic fault before DecodeLength ever sees it.
	MaxHeaderLength = 5
)

// headerLenOfLen returns, from the first byte of a prefix alone, how many
// additional bytes make up the full header (0 means the header is exactly
// one byte, or that b is a self-encoded single byte with no header at all).
func headerLenOfLen(b byte) int {
	switch {
	case b <= singleByteMax:
		return 0
	case b <= shortStringMax:
		return 0
	case b <= longStringMax:
		return int(b - shortStringMax)
	case b <= shortListMax:
		return 0
	default:
		return int(b - shortListMax)
	}
}

// CanDecode reports whether the header in buf[0:n] is complete enough for
// DecodeLength to run, and whether what has been seen so far is valid RLP.
// decidable is true once n has reached the full header length implied by
// buf[0]; valid is false as soon as a canonical-encoding violation is
// detected, even if more bytes would still be needed to reach decidable.
func CanDecode(buf []byte, n int) (decidable bool, valid bool) {
	if n == 0 {
		return false, true
	}
	first := buf[0]
	lenOfLen := headerLenOfLen(first)
	if lenOfLen == 0 {
		return true, true
	}
	if n < 1+lenOfLen {
		// Still waiting for the length-of-length bytes themselves; the one
		// violation detectable this early is lenOfLen == 0, already ruled
		// out above, so nothing further to check yet.
		return false, true
	}
	if lenOfLen == 0 {
		return true, false
	}
	lengthBytes := buf[1 : 1+lenOfLen]
	if lengthBytes[0] == 0 {
		return true, false
	}
	return true, true
}

// DecodeLength interprets a complete header in buf[0:n] (n must be the
// value CanDecode required for decidable == true). It returns the declared
// payload length, the number of bytes the header itself occupies (0 for a
// self-encoded single byte, in which case the caller must re-present that
// byte as the one-byte payload), and whether the value is a list.
func DecodeLength(buf []byte, n int) (payloadLength uint32, headerLength int, isList bool, err error) {
	if n == 0 {
		return 0, 0, false, ErrNonCanonicalLength
	}
	first := buf[0]
	switch {
	case first <= singleByteMax:
		return 1, 0, false, nil

	case first <= shortStringMax:
		return uint32(first - 0x80), 1, false, nil

	case first <= longStringMax:
		lenOfLen := int(first - shortStringMax)
		if lenOfLen == 0 {
			return 0, 0, false, ErrZeroLengthOfLength
		}
		if n < 1+lenOfLen {
			return 0, 0, false, ErrNonCanonicalLength
		}
		length, ok := decodeBigEndian(buf[1 : 1+lenOfLen])
		if !ok {
			return 0, 0, false, ErrNonCanonicalLength
		}
		return length, 1 + lenOfLen, false, nil

	case first <= shortListMax:
		return uint32(first - 0xc0), 1, true, nil

	default:
		lenOfLen := int(first - shortListMax)
		if lenOfLen == 0 {
			return 0, 0, false, ErrZeroLengthOfLength
		}
		if n < 1+lenOfLen {
			return 0, 0, false, ErrNonCanonicalLength
		}
		length, ok := decodeBigEndian(buf[1 : 1+lenOfLen])
		if !ok {
			return 0, 0, false, ErrNonCanonicalLength
		}
		return length, 1 + lenOfLen, true, nil
	}
}

// decodeBigEndian reads a big-endian length field, rejecting the
// non-canonical leading-zero-byte encoding.
func decodeBigEndian(b []byte) (uint32, bool) {
	if b[0] == 0 {
		return 0, false
	}
	if len(b) > 4 {
		// A length that doesn't fit uint32 cannot be a valid field length
		// for any field this parser handles (all bounded well under 2^32),
		// so treat it as non-canonical for our purposes rather than adding
		// a wider integer type nothing downstream needs.
		return 0, false
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v, true
}
