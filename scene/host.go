package scene

import (
	"sort"
	"time"
)

// Scene is what a Host drives. OnFrame runs once per update and OnActivate
// once per input event. Reset rebuilds the round from scratch.
type Scene interface {
	OnFrame()
	OnActivate()
	Reset()
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// Host owns the frame loop, the simulated clock and one-shot timers. It is
// not safe for concurrent use.
type Host struct {
	scene  Scene
	now    time.Duration
	seq    int
	timers []timer
}

func NewHost() *Host {
	return &Host{}
}

// Attach sets the scene and resets it.
func (h *Host) Attach(s Scene) {
	h.scene = s
	h.Restart()
}

// Now is the simulated time since the host was created.
func (h *Host) Now() time.Duration {
	return h.now
}

// After schedules fn to run once, d from now. Scheduled calls cannot be
// cancelled.
func (h *Host) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	h.seq++
	h.timers = append(h.timers, timer{at: h.now + d, seq: h.seq, fn: fn})
}

// Pending reports how many timers have not fired yet.
func (h *Host) Pending() int {
	return len(h.timers)
}

// Activate forwards one input event to the scene.
func (h *Host) Activate() {
	if h.scene != nil {
		h.scene.OnActivate()
	}
}

// Restart resets the attached scene.
func (h *Host) Restart() {
	if h.scene != nil {
		h.scene.Reset()
	}
}

// Update runs one frame and then advances the clock by dt.
func (h *Host) Update(dt time.Duration) {
	if h.scene != nil {
		h.scene.OnFrame()
	}
	h.Advance(dt)
}

// Advance moves the clock forward and fires every timer that is due, in
// deadline order. Timers scheduled by a firing timer wait for a later call.
func (h *Host) Advance(dt time.Duration) {
	if dt > 0 {
		h.now += dt
	}
	if len(h.timers) == 0 {
		return
	}

	var due, rest []timer
	for _, t := range h.timers {
		if t.at <= h.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	h.timers = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}
