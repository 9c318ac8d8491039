package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/milk9111/flapper/course"
	"github.com/milk9111/flapper/prefabs"
	"gopkg.in/yaml.v3"
)

type pairSnapshot struct {
	X            float64 `yaml:"x"`
	UpperBottomY float64 `yaml:"upper_bottom_y"`
	LowerTopY    float64 `yaml:"lower_top_y"`
	Gap          float64 `yaml:"gap"`
	Placements   int     `yaml:"placements"`
}

type snapshot struct {
	Frame    int            `yaml:"frame"`
	Seconds  float64        `yaml:"seconds"`
	Recycled int            `yaml:"recycled"`
	Pairs    []pairSnapshot `yaml:"pairs"`
}

type options struct {
	seed   uint64
	frames int
	tps    int
	every  int
}

func main() {
	var opts options
	flag.Uint64Var(&opts.seed, "seed", 1, "course seed")
	flag.IntVar(&opts.frames, "frames", 600, "frames to simulate")
	flag.IntVar(&opts.tps, "tps", 60, "simulated ticks per second")
	flag.IntVar(&opts.every, "every", 60, "emit a snapshot every N frames")
	flag.Parse()

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := run(os.Stdout, cfg.Course, opts); err != nil {
		log.Fatal(err)
	}
}

// run scrolls a course without physics and writes YAML snapshots, one
// document per sample, including the initial layout and the final frame.
func run(out io.Writer, spec prefabs.CourseSpec, opts options) error {
	if opts.tps <= 0 {
		return fmt.Errorf("coursegen: tps must be positive, got %d", opts.tps)
	}
	if opts.every <= 0 {
		opts.every = 1
	}

	stream, err := course.NewStream(spec.CourseConfig(), rand.New(rand.NewPCG(opts.seed, opts.seed)))
	if err != nil {
		return err
	}
	stream.Initialize()

	enc := yaml.NewEncoder(out)
	defer enc.Close()

	dx := spec.ScrollSpeed / float64(opts.tps)
	recycled := 0
	for frame := 0; frame <= opts.frames; frame++ {
		if frame > 0 {
			stream.Tick(dx)
			recycled += len(stream.RecycleOffscreen())
		}
		if frame%opts.every != 0 && frame != opts.frames {
			continue
		}
		if err := enc.Encode(snapshotOf(stream, frame, opts.tps, recycled)); err != nil {
			return fmt.Errorf("coursegen: encode frame %d: %w", frame, err)
		}
	}
	return nil
}

func snapshotOf(stream *course.Stream, frame, tps, recycled int) snapshot {
	s := snapshot{
		Frame:    frame,
		Seconds:  float64(frame) / float64(tps),
		Recycled: recycled,
	}
	for _, p := range stream.Pairs() {
		s.Pairs = append(s.Pairs, pairSnapshot{
			X:            p.X,
			UpperBottomY: p.UpperBottomY,
			LowerTopY:    p.LowerTopY,
			Gap:          p.Gap,
			Placements:   p.Placements,
		})
	}
	return s
}
