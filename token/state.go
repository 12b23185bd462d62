package token

// tokenDataSize is the byte length of an ERC-20 transfer(address,uint256)
// call's argument payload: 4-byte selector + 32-byte padded address +
// 32-byte amount.
const tokenDataSize = 4 + 32 + 32

// DisplayKind identifies which shape of raw-data chunk a State.Display
// carries after a CustomSuspended return.
type DisplayKind int

const (
	// DisplaySelector means Display.Selector holds the first 4 bytes of
	// an unrecognized DATA payload (the function selector).
	DisplaySelector DisplayKind = iota
	// DisplayParameter means Display.Parameter holds one 32-byte ABI
	// argument word, with Display.Index identifying which one.
	DisplayParameter
)

// Display is the chunk of an unrecognized DATA payload ready for a host
// to render, populated immediately before Process returns CustomSuspended.
type Display struct {
	Kind      DisplayKind
	Index     uint32
	Selector  [4]byte
	Parameter [32]byte
}

// State holds the per-transaction scratch space a Recognizer needs across
// suspend/resume boundaries: which branch it committed to on first seeing
// the DATA field, and progress through whichever one it took. A fresh
// State must be supplied (via the parser.Context Extra field) for every
// transaction parsed with a Recognizer installed as the custom processor.
type State struct {
	tokenProvisioned bool
	tokenData        [tokenDataSize]byte

	rawBlock    [32]byte
	fieldIndex  uint32
	fieldOffset uint32

	Display Display
}

// TokenProvisioned reports whether the DATA field was recognized as a
// known ERC-20 transfer() call. Valid only once the field has started
// (currentFieldPos has advanced past 0), mirroring when the original
// firmware's tokenProvisioned flag becomes meaningful.
func (s *State) TokenProvisioned() bool { return s.tokenProvisioned }
