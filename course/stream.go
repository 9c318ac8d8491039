package course

import (
	"math/rand/v2"
	"sort"

	"github.com/milk9111/flapper/common"
)

// Pair is one upper and one lower obstacle segment sharing an x position.
type Pair struct {
	X            float64
	UpperBottomY float64
	LowerTopY    float64
	Gap          float64
	Width        float64
	// Placements counts how often the pair has been positioned. Bodies that
	// mirror the pair compare it to notice a recycle.
	Placements int
}

// Right is the x coordinate of the pair's right edge.
func (p *Pair) Right() float64 {
	return p.X + p.Width
}

// Stream manages a fixed pool of obstacle pairs for an endless course.
type Stream struct {
	cfg   Config
	rng   *rand.Rand
	pairs []*Pair
}

// NewStream validates cfg and allocates the pool. Pairs are not placed until
// Initialize is called.
func NewStream(cfg Config, rng *rand.Rand) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pairs := make([]*Pair, cfg.PairCount)
	for i := range pairs {
		pairs[i] = &Pair{Width: cfg.PairWidth}
	}
	return &Stream{cfg: cfg, rng: rng, pairs: pairs}, nil
}

// Config returns the parameters the stream was built with.
func (s *Stream) Config() Config {
	return s.cfg
}

// Pairs returns the pool in creation order.
func (s *Stream) Pairs() []*Pair {
	return s.pairs
}

// Initialize lays the whole pool out from x=0, each pair to the right of the
// one placed before it.
func (s *Stream) Initialize() {
	for _, p := range s.pairs {
		p.X = 0
		p.Placements = 0
	}
	for _, p := range s.pairs {
		s.PlacePair(p, s.RightmostX())
	}
}

// PlacePair draws a new gap, spacing and vertical position for p and puts it
// spacing pixels right of rightmostX.
func (s *Stream) PlacePair(p *Pair, rightmostX float64) {
	gap := common.Between(s.rng, s.cfg.Gap.Min, s.cfg.Gap.Max)
	spacing := common.Between(s.rng, s.cfg.Spacing.Min, s.cfg.Spacing.Max)
	upperBottomY := common.Between(s.rng, s.cfg.Band.Min, s.cfg.Band.Max-gap)

	p.X = rightmostX + float64(spacing)
	p.UpperBottomY = float64(upperBottomY)
	p.LowerTopY = p.UpperBottomY + float64(gap)
	p.Gap = float64(gap)
	p.Width = s.cfg.PairWidth
	p.Placements++
}

// RightmostX returns the largest pair x, never less than 0.
func (s *Stream) RightmostX() float64 {
	rightmost := 0.0
	for _, p := range s.pairs {
		rightmost = max(rightmost, p.X)
	}
	return rightmost
}

// Tick scrolls every pair left by dx.
func (s *Stream) Tick(dx float64) {
	for _, p := range s.pairs {
		p.X -= dx
	}
}

// RecycleOffscreen moves every pair whose right edge has passed x=0 back to
// the front of the course, leftmost first, and returns them in that order.
func (s *Stream) RecycleOffscreen() []*Pair {
	var expired []*Pair
	for _, p := range s.pairs {
		if p.Right() < 0 {
			expired = append(expired, p)
		}
	}
	if len(expired) == 0 {
		return nil
	}
	sort.SliceStable(expired, func(i, j int) bool { return expired[i].X < expired[j].X })
	for _, p := range expired {
		s.PlacePair(p, s.RightmostX())
	}
	return expired
}
