package common

import "math/rand/v2"

// Between returns a uniformly distributed integer in [lo, hi], both ends
// included. Reversed bounds are swapped.
func Between(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}
