package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives the puzzle seed for a date using HMAC(salt, YYYY-MM-DD).
// Word choice, placement and filler letters all follow from it.
func Seed(date time.Time, salt string) uint64 {
	return SeedForKey(DateKey(date), salt)
}

// SeedForKey is Seed for an already formatted date key.
func SeedForKey(dateKey, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a PCG seed
	return binary.BigEndian.Uint64(sum[:8])
}
