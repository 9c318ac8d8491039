package round

import (
	"log"
	"time"
)

// DefaultRestartDelay is how long a finished round stays over.
const DefaultRestartDelay = 1000 * time.Millisecond

type State int

const (
	Active State = iota
	Over
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Reason records what ended a round.
type Reason int

const (
	ReasonCollision Reason = iota + 1
	ReasonBoundary
)

func (r Reason) String() string {
	switch r {
	case ReasonCollision:
		return "collision"
	case ReasonBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Scheduler runs fn once after d has elapsed on the host clock.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Hooks are the side effects of the lifecycle transitions.
type Hooks struct {
	// OnOver runs synchronously when the round ends.
	OnOver func(Reason)
	// OnRestart runs when the restart delay has elapsed.
	OnRestart func()
}

// Round is the two-state Active/Over lifecycle of one play session.
type Round struct {
	state     State
	delay     time.Duration
	scheduler Scheduler
	hooks     Hooks

	reason Reason
	ends   int
}

func New(delay time.Duration, scheduler Scheduler, hooks Hooks) *Round {
	if delay < 0 {
		delay = 0
	}
	return &Round{delay: delay, scheduler: scheduler, hooks: hooks}
}

// Start enters Active.
func (r *Round) Start() {
	r.state = Active
	r.reason = 0
}

func (r *Round) State() State {
	return r.state
}

// Reason reports why the current round ended; zero while Active.
func (r *Round) Reason() Reason {
	return r.reason
}

// Ends counts how many rounds have ended.
func (r *Round) Ends() int {
	return r.ends
}

// End moves an Active round to Over and schedules the restart. Once
// scheduled the restart cannot be cancelled. Ending a round that is already
// over is a no-op and returns false.
func (r *Round) End(reason Reason) bool {
	if r.state != Active {
		return false
	}
	r.state = Over
	r.reason = reason
	r.ends++
	log.Printf("round: over (%s), restarting in %s", reason, r.delay)

	if r.hooks.OnOver != nil {
		r.hooks.OnOver(reason)
	}
	if r.scheduler != nil {
		r.scheduler.After(r.delay, r.restart)
	}
	return true
}

func (r *Round) restart() {
	if r.hooks.OnRestart != nil {
		r.hooks.OnRestart()
	}
}
