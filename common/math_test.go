package common

import (
	"math/rand/v2"
	"testing"
)

func TestBetween(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi int
	}{
		{"degenerate", 5, 5},
		{"small", 0, 1},
		{"gap_range", 100, 300},
		{"reversed", 10, -10},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lo, hi := c.lo, c.hi
			if hi < lo {
				lo, hi = hi, lo
			}
			seenLo, seenHi := false, false
			for i := 0; i < 5000; i++ {
				v := Between(r, c.lo, c.hi)
				if v < lo || v > hi {
					t.Fatalf("Between(%d, %d) = %d out of range", c.lo, c.hi, v)
				}
				seenLo = seenLo || v == lo
				seenHi = seenHi || v == hi
			}
			if hi-lo <= 10 && (!seenLo || !seenHi) {
				t.Fatalf("expected both endpoints to be drawn, lo=%v hi=%v", seenLo, seenHi)
			}
		})
	}
}
