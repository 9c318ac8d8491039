package round

import (
	"testing"
	"time"
)

type pendingCall struct {
	delay time.Duration
	fn    func()
}

type fakeScheduler struct {
	calls []pendingCall
}

func (f *fakeScheduler) After(d time.Duration, fn func()) {
	f.calls = append(f.calls, pendingCall{delay: d, fn: fn})
}

func TestRoundEnd(t *testing.T) {
	cases := []struct {
		name   string
		reason Reason
	}{
		{"collision", ReasonCollision},
		{"boundary", ReasonBoundary},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sched := &fakeScheduler{}
			var overReason Reason
			restarts := 0

			var r *Round
			r = New(DefaultRestartDelay, sched, Hooks{
				OnOver:    func(reason Reason) { overReason = reason },
				OnRestart: func() { restarts++; r.Start() },
			})
			r.Start()

			if !r.End(c.reason) {
				t.Fatalf("End should succeed while active")
			}
			if r.State() != Over || r.Reason() != c.reason || overReason != c.reason {
				t.Fatalf("state=%s reason=%s hook=%s", r.State(), r.Reason(), overReason)
			}
			if len(sched.calls) != 1 || sched.calls[0].delay != time.Second {
				t.Fatalf("expected one restart scheduled after 1s, got %+v", sched.calls)
			}

			if r.End(ReasonCollision) {
				t.Fatalf("End while over must be a no-op")
			}
			if len(sched.calls) != 1 || r.Ends() != 1 {
				t.Fatalf("second End scheduled again: calls=%d ends=%d", len(sched.calls), r.Ends())
			}

			sched.calls[0].fn()
			if restarts != 1 || r.State() != Active || r.Reason() != 0 {
				t.Fatalf("restart: count=%d state=%s reason=%s", restarts, r.State(), r.Reason())
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Active.String() != "active" || Over.String() != "over" || State(9).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}

func TestNegativeDelay(t *testing.T) {
	sched := &fakeScheduler{}
	r := New(-time.Second, sched, Hooks{})
	r.Start()
	r.End(ReasonBoundary)
	if sched.calls[0].delay != 0 {
		t.Fatalf("negative delay should clamp to zero, got %s", sched.calls[0].delay)
	}
}
