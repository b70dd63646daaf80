package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns a deterministic BLAKE3 hash of the kind and formatted text.
// The raw body and timestamps are left out so two runs that display the same
// thing hash the same.
func (r GenerationResult) Digest() string {
	h := blake3.New()

	h.Write([]byte(r.Kind))
	h.Write([]byte{0})

	h.Write([]byte(r.Text))

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
