// Package checksum fingerprints converted notes so a rerun can tell which
// outputs actually changed.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// String is Sum for text.
func String(s string) string {
	return Sum([]byte(s))
}

// Changed returns, sorted, the paths of cur that are new or whose digest
// differs from prev.
func Changed(prev, cur map[string]string) []string {
	var out []string
	for path, sum := range cur {
		if old, ok := prev[path]; !ok || old != sum {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
