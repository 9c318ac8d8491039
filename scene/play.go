package scene

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flapper/course"
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/ecs/component"
	"github.com/milk9111/flapper/ecs/system"
	"github.com/milk9111/flapper/prefabs"
	"github.com/milk9111/flapper/round"
)

// PlayScene is the playable round: a falling player and an endless stream of
// obstacle pairs. It is driven by a Host through the Scene interface.
type PlayScene struct {
	host *Host
	rng  *rand.Rand
	step float64

	cfg     prefabs.Config
	pending *prefabs.Config

	world   *ecs.World
	physics *system.PhysicsSystem
	recycle *system.RecycleSystem
	stream  *course.Stream
	round   *round.Round
	player  ecs.Entity
}

// NewPlayScene validates cfg and wires the round lifecycle to host. The scene
// is empty until Reset runs, which Host.Attach does.
func NewPlayScene(cfg prefabs.Config, host *Host, rng *rand.Rand, step float64) (*PlayScene, error) {
	if host == nil {
		return nil, fmt.Errorf("scene: nil host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &PlayScene{host: host, rng: rng, step: step, cfg: cfg}
	s.round = round.New(cfg.World.RestartDelay(), host, round.Hooks{
		OnOver:    s.onRoundOver,
		OnRestart: host.Restart,
	})
	return s, nil
}

func (s *PlayScene) OnFrame() {
	s.world.Update()
}

// OnActivate kicks the player upward. Repeated calls stack without a cap.
func (s *PlayScene) OnActivate() {
	if s.physics == nil {
		return
	}
	s.physics.Impulse(s.player, s.cfg.Player.FlapImpulse)
}

// Reset rebuilds the world from the current config. A config handed to
// SetPendingConfig is adopted here and nowhere else.
func (s *PlayScene) Reset() {
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
		log.Printf("scene: applied reloaded config")
	}

	stream, err := course.NewStream(s.cfg.Course.CourseConfig(), s.rng)
	if err != nil {
		panic("scene: build stream: " + err.Error())
	}
	stream.Initialize()

	w := ecs.NewWorld()
	if err := s.spawnPlayArea(w); err != nil {
		panic("scene: spawn play area: " + err.Error())
	}
	player, err := s.spawnPlayer(w)
	if err != nil {
		panic("scene: spawn player: " + err.Error())
	}
	for i, pair := range stream.Pairs() {
		if err := s.spawnPair(w, i, pair); err != nil {
			panic("scene: spawn pair: " + err.Error())
		}
	}

	physics := system.NewPhysicsSystem(s.step)
	physics.SetObstacleVelocity(cp.Vector{X: -s.cfg.Course.ScrollSpeed})
	physics.Sync(w)

	recycle := system.NewRecycleSystem(stream)

	// order matters: motion, then boundary and collision checks, then recycling
	w.AddSystem(physics)
	w.AddSystem(system.NewBoundarySystem())
	w.AddSystem(system.NewRoundEndSystem(s.round))
	w.AddSystem(recycle)

	s.world = w
	s.physics = physics
	s.recycle = recycle
	s.stream = stream
	s.player = player
	s.round.Start()
}

// SetPendingConfig queues cfg for the next round.
func (s *PlayScene) SetPendingConfig(cfg prefabs.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.pending = &cfg
	return nil
}

func (s *PlayScene) onRoundOver(reason round.Reason) {
	s.physics.Pause()
	tint := &component.Tint{Color: s.cfg.Player.DamagedColor.RGBA}
	if err := ecs.Add(s.world, s.player, component.TintComponent.Kind(), tint); err != nil {
		log.Printf("scene: tint player: %v", err)
	}
}

func (s *PlayScene) spawnPlayArea(w *ecs.World) error {
	e := ecs.CreateEntity(w)
	return ecs.Add(w, e, component.PlayAreaComponent.Kind(), &component.PlayArea{
		Width:  s.cfg.World.Width,
		Height: s.cfg.World.Height,
	})
}

func (s *PlayScene) spawnPlayer(w *ecs.World) (ecs.Entity, error) {
	spec := s.cfg.Player
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.Start.X, Y: spec.Start.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Rate: spec.Gravity}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Size.Width,
		Height: spec.Size.Height,
		Mass:   spec.Mass,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  spec.Size.Width,
		Height: spec.Size.Height,
		Color:  spec.Color.RGBA,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func (s *PlayScene) spawnPair(w *ecs.World, index int, pair *course.Pair) error {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pair.X}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{
		Pair:          pair,
		Index:         index,
		SegmentLength: s.cfg.Course.SegmentLength,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:     pair.Width,
		Kinematic: true,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width: pair.Width,
		Color: s.cfg.Course.Color.RGBA,
	})
}

func (s *PlayScene) World() *ecs.World              { return s.world }
func (s *PlayScene) Physics() *system.PhysicsSystem { return s.physics }
func (s *PlayScene) Stream() *course.Stream         { return s.stream }
func (s *PlayScene) Round() *round.Round            { return s.round }
func (s *PlayScene) Player() ecs.Entity             { return s.player }
func (s *PlayScene) Config() prefabs.Config         { return s.cfg }

// Recycled counts pairs recycled during the current round.
func (s *PlayScene) Recycled() int { return s.recycle.Recycled() }
