package sample

import (
	"io"

	"github.com/zeebo/blake3"
)

// NewSeededReader returns a deterministic stream of pseudo-random bytes
// derived from seed. Two readers built from the same seed produce the
// same stream, which makes generation reproducible in tests and in the
// CLI's mnemonic mode. It must not be used where unpredictability
// matters; use crypto/rand there.
func NewSeededReader(seed []byte) io.Reader {
	h := blake3.New()
	_, _ = h.Write(seed)
	return h.Digest()
}
