package component

// PlayArea stores the bounds of the visible course.
type PlayArea struct {
	Width  float64
	Height float64
}

var PlayAreaComponent = NewComponent[PlayArea]()
