package parser

import (
	"bytes"
	"testing"

	"github.com/celotx/celotx/hash"
	"github.com/celotx/celotx/txtypes"
)

// rlpStr RLP-encodes a byte string for test fixture construction. It only
// supports the short-string range (payload <= 55 bytes), which is all
// these fixtures need.
func rlpStr(b []byte) []byte {
	if len(b) == 1 && b[0] <= 0x7f {
		return b
	}
	if len(b) > 55 {
		panic("rlpStr: fixture helper only supports short strings")
	}
	return append([]byte{0x80 + byte(len(b))}, b...)
}

func rlpList(payload []byte) []byte {
	if len(payload) <= 55 {
		return append([]byte{0xc0 + byte(len(payload))}, payload...)
	}
	n := len(payload)
	return append([]byte{0xf8, byte(n)}, payload...)
}

func fill(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func ethereumLegacyTxFixture() []byte {
	to := fill(20, 0xaa)
	value := []byte{0x0d, 0xe0, 0xb6, 0xb3, 0xa7, 0x64, 0x00, 0x00}
	r := fill(32, 0x11)
	s := fill(32, 0x22)

	var payload []byte
	payload = append(payload, rlpStr([]byte{0x01})...) // nonce
	payload = append(payload, rlpStr([]byte{0x02})...) // gasprice
	payload = append(payload, rlpStr([]byte{0x52, 0x08})...) // startgas
	payload = append(payload, rlpStr(to)...)
	payload = append(payload, rlpStr(value)...)
	payload = append(payload, rlpStr(nil)...) // data, empty
	payload = append(payload, rlpStr([]byte{0x1c})...) // v
	payload = append(payload, rlpStr(r)...)
	payload = append(payload, rlpStr(s)...)
	return rlpList(payload)
}

func celoTxFixture() []byte {
	to := fill(20, 0xbb)
	value := []byte{0x0d, 0xe0, 0xb6, 0xb3, 0xa7, 0x64, 0x00, 0x00}
	r := fill(32, 0x33)
	s := fill(32, 0x44)

	var payload []byte
	payload = append(payload, rlpStr([]byte{0x01})...) // nonce
	payload = append(payload, rlpStr([]byte{0x02})...) // gasprice
	payload = append(payload, rlpStr([]byte{0x52, 0x08})...) // startgas
	payload = append(payload, rlpStr(nil)...)                // feeCurrency, native
	payload = append(payload, rlpStr(nil)...)                // gatewayTo, absent
	payload = append(payload, rlpStr(nil)...)                // gatewayFee, zero
	payload = append(payload, rlpStr(to)...)
	payload = append(payload, rlpStr(value)...)
	payload = append(payload, rlpStr(nil)...)          // data, empty
	payload = append(payload, rlpStr([]byte{0x1c})...) // v
	payload = append(payload, rlpStr(r)...)
	payload = append(payload, rlpStr(s)...)
	return rlpList(payload)
}

func newTestContext(isEthereum bool) (*Context, *txtypes.Content) {
	content := &txtypes.Content{}
	ctx := NewContext(hash.NewKeccak256(), content, nil, isEthereum, nil)
	return ctx, content
}

func TestProcessTx_EthereumLegacyTransfer_SinglePass(t *testing.T) {
	ctx, content := newTestContext(true)
	tx := ethereumLegacyTxFixture()

	status, err := ProcessTx(ctx, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusFinished {
		t.Fatalf("got status %s, want FINISHED", status)
	}
	if !content.Destination.Present() {
		t.Fatal("destination not recorded")
	}
	if !bytes.Equal(content.Destination.Bytes(), fill(20, 0xaa)) {
		t.Fatalf("destination mismatch: %x", content.Destination.Bytes())
	}
	if content.FeeCurrency.Present() {
		t.Fatal("ethereum mode must never populate feeCurrency")
	}
	if content.GatewayDestination.Present() {
		t.Fatal("ethereum mode must never populate gatewayTo")
	}
	if content.VLength != 1 || content.V[0] != 0x1c {
		t.Fatalf("v mismatch: %x (length %d)", content.V, content.VLength)
	}
}

func TestProcessTx_CeloTokenTransfer_SinglePass(t *testing.T) {
	ctx, content := newTestContext(false)
	tx := celoTxFixture()

	status, err := ProcessTx(ctx, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusFinished {
		t.Fatalf("got status %s, want FINISHED", status)
	}
	if content.FeeCurrency.Present() {
		t.Fatal("native fee currency must report absent, not present")
	}
	if !bytes.Equal(content.Destination.Bytes(), fill(20, 0xbb)) {
		t.Fatalf("destination mismatch: %x", content.Destination.Bytes())
	}
}

// TestProcessTx_FragmentedOneByteAtATime feeds the same Celo fixture one
// byte per call, the harshest possible fragmentation, and checks the
// result matches the single-pass parse exactly.
func TestProcessTx_FragmentedOneByteAtATime(t *testing.T) {
	ctx, content := newTestContext(false)
	tx := celoTxFixture()

	status, err := ProcessTx(ctx, tx[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(tx) && status == StatusProcessing; i++ {
		status, err = ContinueTx(ctx, tx[i:i+1])
		if err != nil {
			t.Fatalf("unexpected error at byte %d: %v", i, err)
		}
	}
	if status != StatusFinished {
		t.Fatalf("got status %s, want FINISHED", status)
	}
	if !bytes.Equal(content.Destination.Bytes(), fill(20, 0xbb)) {
		t.Fatalf("destination mismatch after fragmentation: %x", content.Destination.Bytes())
	}
}

func TestProcessTx_FragmentHash_MatchesSinglePassHash(t *testing.T) {
	tx := celoTxFixture()

	ctx1, _ := newTestContext(false)
	if _, err := ProcessTx(ctx1, tx); err != nil {
		t.Fatalf("single-pass error: %v", err)
	}
	wantHash := ctx1.hasher.Sum32()

	ctx2, _ := newTestContext(false)
	status, err := ProcessTx(ctx2, tx[:10])
	if err != nil {
		t.Fatalf("fragment 1 error: %v", err)
	}
	for off := 10; off < len(tx) && status == StatusProcessing; {
		end := off + 7
		if end > len(tx) {
			end = len(tx)
		}
		status, err = ContinueTx(ctx2, tx[off:end])
		if err != nil {
			t.Fatalf("fragment error at %d: %v", off, err)
		}
		off = end
	}
	if status != StatusFinished {
		t.Fatalf("got status %s, want FINISHED", status)
	}
	gotHash := ctx2.hasher.Sum32()
	if gotHash != wantHash {
		t.Fatalf("fragmented hash %x != single-pass hash %x", gotHash, wantHash)
	}
}

func TestProcessTx_MalformedHeader_NonCanonicalLength(t *testing.T) {
	ctx, _ := newTestContext(true)
	// 0xb9 declares a 2-byte length-of-length; leading zero byte is
	// non-canonical.
	tx := []byte{0xb9, 0x00, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05}

	status, err := ProcessTx(ctx, tx)
	if status != StatusFault {
		t.Fatalf("got status %s, want FAULT", status)
	}
	if err != ErrRLPEncoding {
		t.Fatalf("got err %v, want ErrRLPEncoding", err)
	}
}

func TestProcessTx_OversizedValue_Rejected(t *testing.T) {
	ctx, _ := newTestContext(true)
	to := fill(20, 0xaa)
	value := fill(33, 0x01) // 33 bytes exceeds MaxInt256Length

	var payload []byte
	payload = append(payload, rlpStr([]byte{0x01})...)
	payload = append(payload, rlpStr([]byte{0x02})...)
	payload = append(payload, rlpStr([]byte{0x52, 0x08})...)
	payload = append(payload, rlpStr(to)...)
	payload = append(payload, append([]byte{0xa1}, value...)...) // 33-byte string header
	tx := rlpList(payload)

	status, err := ProcessTx(ctx, tx)
	if status != StatusFault {
		t.Fatalf("got status %s, want FAULT", status)
	}
	if err != ErrFieldLength {
		t.Fatalf("got err %v, want ErrFieldLength", err)
	}
}

// dataForbiddenProcessor is a minimal CustomProcessor standing in for
// token.Recognizer's policy gate (token cannot be imported here without an
// import cycle): it faults as soon as a contract-creation DATA field
// (destination absent) arrives, mirroring how a real policy-enforcing
// processor must react regardless of whether the destination is known.
type dataForbiddenProcessor struct{}

func (dataForbiddenProcessor) Process(ctx *Context) (CustomStatus, error) {
	if ctx.CurrentField() != FieldData || ctx.CurrentFieldLength() == 0 {
		return NotHandled, nil
	}
	if !ctx.Content().Destination.Present() {
		return CustomFault, ErrPolicy
	}
	return NotHandled, nil
}

// TestProcessTx_ContractCreationWithData_PolicyForbids_Faults exercises
// scenario 6: a contract-creation transaction (destination absent) with a
// non-empty DATA field must reach StatusFault when a custom processor's
// policy forbids data, not silently fall through to the default discard
// handler and finish successfully.
func TestProcessTx_ContractCreationWithData_PolicyForbids_Faults(t *testing.T) {
	content := &txtypes.Content{}
	ctx := NewContext(hash.NewKeccak256(), content, dataForbiddenProcessor{}, true, nil)

	value := []byte{0x01}
	data := []byte{0x12, 0x34, 0x56, 0x78}

	var payload []byte
	payload = append(payload, rlpStr([]byte{0x01})...) // nonce
	payload = append(payload, rlpStr([]byte{0x02})...) // gasprice
	payload = append(payload, rlpStr([]byte{0x52, 0x08})...) // startgas
	payload = append(payload, rlpStr(nil)...)                // to, absent: contract creation
	payload = append(payload, rlpStr(value)...)
	payload = append(payload, rlpStr(data)...)
	tx := rlpList(payload)

	status, err := ProcessTx(ctx, tx)
	if status != StatusFault {
		t.Fatalf("got status %s, want FAULT", status)
	}
	if err != ErrPolicy {
		t.Fatalf("got err %v, want ErrPolicy", err)
	}
}

func TestProcessTx_LegacyTerminationAtFieldBoundary(t *testing.T) {
	ctx, content := newTestContext(true)
	to := fill(20, 0xaa)
	value := []byte{0x01}

	var payload []byte
	payload = append(payload, rlpStr([]byte{0x01})...)
	payload = append(payload, rlpStr([]byte{0x02})...)
	payload = append(payload, rlpStr([]byte{0x52, 0x08})...)
	payload = append(payload, rlpStr(to)...)
	payload = append(payload, rlpStr(value)...)
	payload = append(payload, rlpStr(nil)...)
	tx := rlpList(payload)

	status, err := ProcessTx(ctx, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusProcessing {
		t.Fatalf("got status %s, want PROCESSING (legacy tx with no V/R/S yet)", status)
	}
	if content.VLength != 0 {
		t.Fatalf("vLength should read 0 at the boundary, got %d", content.VLength)
	}
}
