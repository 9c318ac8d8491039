package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input turns this frame's presses into activations: a left click, the
// space bar and every new touch each count once.
type Input struct {
	touches []ebiten.TouchID
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Activations() int {
	n := 0
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		n++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		n++
	}
	i.touches = inpututil.AppendJustPressedTouchIDs(i.touches[:0])
	n += len(i.touches)
	return n
}
