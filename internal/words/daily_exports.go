// internal/words/daily_exports.go
//
// Word selection for the Daily Challenge mode.
// The same seed always yields the same words, so every player sees the
// same daily puzzle for a given date.

package words

import "math/rand/v2"

// Daily returns n words for a daily seed, each at most maxLen letters.
func Daily(seed uint64, n, maxLen int) []string {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	return pickFrom(list, rng, n, maxLen)
}
