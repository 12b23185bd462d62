// Package hash provides the incremental Keccak-256 facade the parser feeds
// as it consumes the transaction stream. The parser never inspects the
// digest itself; it is finalized and consumed by the enclosing application
// once the stream reaches FINISHED.
package hash

import "golang.org/x/crypto/sha3"

// Hasher is the capability the parser is handed at Init time. It is
// intentionally narrower than hash.Hash: the parser only ever writes bytes
// and, once, reads the final digest.
type Hasher interface {
	// Update feeds p into the running hash. It never returns an error: a
	// Keccak sponge absorbs any byte sequence.
	Update(p []byte)

	// Sum32 finalizes the hash and returns the 32-byte digest. Calling
	// Update after Sum32 starts an unrelated hash; the parser never does
	// this, since Sum32 is only called after FINISHED.
	Sum32() [32]byte
}

type keccak256 struct {
	state sha3state
}

// sha3state is the subset of hash.Hash keccak256 needs.
type sha3state interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// NewKeccak256 returns a Hasher backed by golang.org/x/crypto/sha3's legacy
// (pre-NIST-finalization) Keccak-256, the variant Ethereum and Celo use for
// transaction hashing.
func NewKeccak256() Hasher {
	return &keccak256{state: sha3.NewLegacyKeccak256()}
}

func (k *keccak256) Update(p []byte) {
	if len(p) == 0 {
		return
	}
	// sha3's Write never errors.
	_, _ = k.state.Write(p)
}

func (k *keccak256) Sum32() [32]byte {
	var out [32]byte
	copy(out[:], k.state.Sum(nil))
	return out
}
