package scene

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flapper/course"
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/ecs/component"
	"github.com/milk9111/flapper/prefabs"
	"github.com/milk9111/flapper/round"
)

var damaged = color.RGBA{R: 0xEE, G: 0x48, B: 0x24, A: 0xFF}

func testConfig() prefabs.Config {
	return prefabs.Config{
		World: prefabs.WorldSpec{Width: 800, Height: 600, RestartDelayMS: 1000},
		Course: prefabs.CourseSpec{
			PairCount:     6,
			Gap:           course.Range{Min: 100, Max: 300},
			Spacing:       course.Range{Min: 400, Max: 600},
			Band:          course.Range{Min: 30, Max: 570},
			PairWidth:     52,
			SegmentLength: 600,
			ScrollSpeed:   200,
		},
		Player: prefabs.PlayerSpec{
			Start:        prefabs.PointSpec{X: 80, Y: 300},
			Size:         prefabs.SizeSpec{Width: 34, Height: 24},
			Mass:         1,
			Gravity:      400,
			FlapImpulse:  300,
			DamagedColor: prefabs.YAMLColor{RGBA: damaged},
		},
	}
}

func newTestScene(t *testing.T, cfg prefabs.Config) (*Host, *PlayScene) {
	t.Helper()
	h := NewHost()
	s, err := NewPlayScene(cfg, h, rand.New(rand.NewPCG(21, 42)), 0)
	if err != nil {
		t.Fatalf("NewPlayScene: %v", err)
	}
	h.Attach(s)
	return h, s
}

func playerTransform(t *testing.T, s *PlayScene) component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player has no transform")
	}
	return *tr
}

func playerVelocity(t *testing.T, s *PlayScene) cp.Vector {
	t.Helper()
	v, ok := s.Physics().Velocity(s.Player())
	if !ok {
		t.Fatalf("player has no body")
	}
	return v
}

// blockPlayer moves the first pair on top of the player with the gap well
// below it.
func blockPlayer(s *PlayScene) {
	pair := s.Stream().Pairs()[0]
	pair.X = s.Config().Player.Start.X - 10
	pair.UpperBottomY = 450
	pair.LowerTopY = 560
	pair.Gap = 110
	pair.Placements++
}

func TestNewPlaySceneRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Course.Band = course.Range{Min: 30, Max: 200}
	if _, err := NewPlayScene(cfg, NewHost(), nil, 0); err == nil {
		t.Fatalf("expected config error")
	}
	if _, err := NewPlayScene(testConfig(), nil, nil, 0); err == nil {
		t.Fatalf("expected nil host error")
	}
}

func TestResetBuildsRound(t *testing.T) {
	_, s := newTestScene(t, testConfig())
	cfg := s.Config()

	if s.Round().State() != round.Active {
		t.Fatalf("round should start active")
	}
	pairs := s.Stream().Pairs()
	if len(pairs) != 6 {
		t.Fatalf("expected 6 pairs, got %d", len(pairs))
	}
	prev := 0.0
	for i, p := range pairs {
		if p.X <= prev {
			t.Fatalf("pair %d not strictly right of previous: %v <= %v", i, p.X, prev)
		}
		if p.LowerTopY-p.UpperBottomY != p.Gap || p.UpperBottomY < 30 || p.LowerTopY > 570 {
			t.Fatalf("pair %d breaks gap/band invariants: %+v", i, *p)
		}
		prev = p.X
	}
	if got := len(s.World().Query(component.ObstacleComponent.Kind())); got != 6 {
		t.Fatalf("expected 6 obstacle entities, got %d", got)
	}

	tr := playerTransform(t, s)
	if tr.X != cfg.Player.Start.X || tr.Y != cfg.Player.Start.Y {
		t.Fatalf("player at %+v", tr)
	}
	if v := playerVelocity(t, s); v != (cp.Vector{}) {
		t.Fatalf("player velocity %+v", v)
	}
}

func TestGravityAndScrolling(t *testing.T) {
	h, s := newTestScene(t, testConfig())
	firstX := s.Stream().Pairs()[0].X

	h.Update(16 * time.Millisecond)

	v := playerVelocity(t, s)
	if v.Y <= 0 {
		t.Fatalf("gravity should pull the player down, vy=%v", v.Y)
	}
	dx := firstX - s.Stream().Pairs()[0].X
	if dx < 3.3 || dx > 3.4 {
		t.Fatalf("pair should scroll 200/60 px per step, moved %v", dx)
	}

	// the player starts at rest, so it only falls once it has picked up speed
	if tr := playerTransform(t, s); tr.Y != 300 {
		t.Fatalf("player moved before gaining speed, y=%v", tr.Y)
	}
	h.Update(16 * time.Millisecond)
	if tr := playerTransform(t, s); tr.Y <= 300 {
		t.Fatalf("player should have fallen, y=%v", tr.Y)
	}
}

func TestActivateImpulse(t *testing.T) {
	h, s := newTestScene(t, testConfig())
	h.Update(16 * time.Millisecond)

	v := playerVelocity(t, s).Y
	h.Activate()
	if got := playerVelocity(t, s).Y; got != v-300 {
		t.Fatalf("after one activation vy=%v, want %v", got, v-300)
	}

	for i := 0; i < 9; i++ {
		h.Activate()
	}
	if got := playerVelocity(t, s).Y; math.Abs(got-(v-3000)) > 1e-9 {
		t.Fatalf("activations must stack unclamped: vy=%v, want %v", got, v-3000)
	}
}

func TestCollisionEndsRound(t *testing.T) {
	h, s := newTestScene(t, testConfig())
	blockPlayer(s)

	h.Update(0)

	if s.Round().State() != round.Over || s.Round().Reason() != round.ReasonCollision {
		t.Fatalf("state=%s reason=%s", s.Round().State(), s.Round().Reason())
	}
	if !s.Physics().Paused() {
		t.Fatalf("physics should be paused")
	}
	tint, ok := ecs.Get(s.World(), s.Player(), component.TintComponent.Kind())
	if !ok || tint.Color != damaged {
		t.Fatalf("player should be tinted as damaged")
	}

	frozenPlayer := playerTransform(t, s)
	frozenPairs := make([]float64, 0, 6)
	for _, p := range s.Stream().Pairs() {
		frozenPairs = append(frozenPairs, p.X)
	}

	h.Activate()
	for i := 0; i < 30; i++ {
		h.Update(10 * time.Millisecond)
	}

	if s.Round().State() != round.Over {
		t.Fatalf("round restarted too early")
	}
	if tr := playerTransform(t, s); tr != frozenPlayer {
		t.Fatalf("player moved while over: %+v -> %+v", frozenPlayer, tr)
	}
	for i, p := range s.Stream().Pairs() {
		if p.X != frozenPairs[i] {
			t.Fatalf("pair %d moved while over", i)
		}
	}
}

func TestRestartAfterDelay(t *testing.T) {
	h, s := newTestScene(t, testConfig())
	blockPlayer(s)
	h.Update(0)
	if s.Round().State() != round.Over {
		t.Fatalf("expected collision to end the round")
	}
	oldWorld := s.World()

	h.Advance(999 * time.Millisecond)
	if s.Round().State() != round.Over {
		t.Fatalf("restarted before 1000ms")
	}

	h.Advance(time.Millisecond)
	if s.Round().State() != round.Active {
		t.Fatalf("expected active exactly 1000ms after game over")
	}
	if s.World() == oldWorld {
		t.Fatalf("restart should rebuild the world")
	}
	if s.Physics().Paused() {
		t.Fatalf("physics should run again")
	}
	if ecs.Has(s.World(), s.Player(), component.TintComponent.Kind()) {
		t.Fatalf("new player should not be tinted")
	}
	tr := playerTransform(t, s)
	if tr.X != 80 || tr.Y != 300 {
		t.Fatalf("player not back at start: %+v", tr)
	}
	if v := playerVelocity(t, s); v != (cp.Vector{}) {
		t.Fatalf("player velocity not reset: %+v", v)
	}
	for i, p := range s.Stream().Pairs() {
		if p.Placements != 1 {
			t.Fatalf("pair %d not freshly placed", i)
		}
	}
	if s.Round().Ends() != 1 {
		t.Fatalf("expected one finished round, got %d", s.Round().Ends())
	}
}

func TestBoundaryEndsRound(t *testing.T) {
	cases := []struct {
		name  string
		setup func(h *Host, s *PlayScene)
	}{
		{"floor", func(h *Host, s *PlayScene) {}},
		{"ceiling", func(h *Host, s *PlayScene) {
			for i := 0; i < 20; i++ {
				h.Activate()
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, s := newTestScene(t, testConfig())
			c.setup(h, s)

			for frame := 0; frame < 600 && s.Round().State() == round.Active; frame++ {
				h.Update(time.Second / 60)
			}

			if s.Round().State() != round.Over || s.Round().Reason() != round.ReasonBoundary {
				t.Fatalf("state=%s reason=%s", s.Round().State(), s.Round().Reason())
			}
			tr := playerTransform(t, s)
			switch c.name {
			case "floor":
				if tr.Y+24 < 600 {
					t.Fatalf("floor hit reported at y=%v", tr.Y)
				}
			case "ceiling":
				if tr.Y > -24 {
					t.Fatalf("ceiling hit reported at y=%v", tr.Y)
				}
			}
		})
	}
}

func TestRecycleThroughPhysics(t *testing.T) {
	h, s := newTestScene(t, testConfig())
	cfg := s.Config().Course

	// without a player nothing can end the round
	ecs.DestroyEntity(s.World(), s.Player())

	first := s.Stream().Pairs()[0]
	for frame := 0; frame < 1000 && first.Placements == 1; frame++ {
		h.Update(time.Second / 60)
	}
	if first.Placements != 2 {
		t.Fatalf("first pair never recycled")
	}
	if s.Recycled() != 1 {
		t.Fatalf("expected exactly one recycled pair, got %d", s.Recycled())
	}

	othersMax := 0.0
	for _, p := range s.Stream().Pairs()[1:] {
		othersMax = max(othersMax, p.X)
		if p.Placements != 1 {
			t.Fatalf("only the first pair should have moved")
		}
	}
	if d := first.X - othersMax; d < float64(cfg.Spacing.Min) || d > float64(cfg.Spacing.Max) {
		t.Fatalf("recycled pair %v from rightmost, want within %s", d, cfg.Spacing)
	}

	// the body follows on the next frame
	h.Update(time.Second / 60)
	var pairEntity ecs.Entity
	ecs.ForEach(s.World(), component.ObstacleComponent.Kind(), func(e ecs.Entity, o *component.Obstacle) {
		if o.Pair == first {
			pairEntity = e
		}
	})
	tr, ok := ecs.Get(s.World(), pairEntity, component.TransformComponent.Kind())
	if !ok || tr.X != first.X || first.X <= othersMax {
		t.Fatalf("obstacle transform %v does not follow recycled pair %v", tr, first.X)
	}
}

func TestPendingConfigAppliesOnReset(t *testing.T) {
	h, s := newTestScene(t, testConfig())

	next := testConfig()
	next.Course.PairCount = 3
	if err := s.SetPendingConfig(next); err != nil {
		t.Fatalf("SetPendingConfig: %v", err)
	}
	if len(s.Stream().Pairs()) != 6 {
		t.Fatalf("config must not change mid-round")
	}

	bad := testConfig()
	bad.Player.Size.Width = 0
	if err := s.SetPendingConfig(bad); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}

	h.Restart()
	if len(s.Stream().Pairs()) != 3 {
		t.Fatalf("pending config not applied on reset, pairs=%d", len(s.Stream().Pairs()))
	}
}
