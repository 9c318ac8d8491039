package course

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange  = errors.New("course: invalid range")
	ErrBandTooNarrow = errors.New("course: vertical band cannot fit the largest gap")
	ErrNoPairs       = errors.New("course: pair count must be positive")
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Config holds the course parameters for one round. It is copied by value
// into the stream and never mutated afterwards.
type Config struct {
	PairCount int
	// Gap is the vertical opening between the upper and lower segment.
	Gap Range
	// Spacing is the horizontal distance from the previous rightmost pair.
	Spacing Range
	// Band bounds where the gap may sit: the upper segment's bottom edge is
	// never above Band.Min and the lower segment's top edge never below Band.Max.
	Band Range
	// PairWidth is the horizontal extent of both segments.
	PairWidth float64
	// SegmentLength is how far each segment extends away from the gap.
	SegmentLength float64
}

// Validate fails fast on configurations where a placement could fall outside
// the band or draw from an empty range.
func (c Config) Validate() error {
	if c.PairCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoPairs, c.PairCount)
	}
	if !c.Gap.valid() || c.Gap.Min <= 0 {
		return fmt.Errorf("%w: gap %s", ErrInvalidRange, c.Gap)
	}
	if !c.Spacing.valid() || c.Spacing.Min <= 0 {
		return fmt.Errorf("%w: spacing %s", ErrInvalidRange, c.Spacing)
	}
	if !c.Band.valid() {
		return fmt.Errorf("%w: band %s", ErrInvalidRange, c.Band)
	}
	if c.Band.Max-c.Gap.Max < c.Band.Min {
		return fmt.Errorf("%w: band %s, gap %s", ErrBandTooNarrow, c.Band, c.Gap)
	}
	if c.PairWidth <= 0 {
		return fmt.Errorf("%w: pair width %.1f", ErrInvalidRange, c.PairWidth)
	}
	return nil
}
