package asset

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// PathID derives a stable asset UUID from the asset kind and its source, so
// the same file referenced twice resolves to one cached asset and scene files
// stay valid across runs.
func PathID(kind, source string) string {
	sum := blake2b.Sum256([]byte(kind + "\x00" + source))
	h := hex.EncodeToString(sum[:16])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
