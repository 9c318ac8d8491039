package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeObstacle
)

// DefaultStep is one Ebitengine tick at the default 60 TPS.
const DefaultStep = 1.0 / 60.0

// PhysicsSystem is the Chipmunk2D-backed physics world: it owns the space,
// mirrors ECS entities into bodies, integrates one step per frame and reports
// player/obstacle overlaps as collision events.
type PhysicsSystem struct {
	space         *cp.Space
	step          float64
	handlersReady bool
	paused        bool

	obstacleVelocity cp.Vector
	entities         map[ecs.Entity]*bodyInfo
	world            *ecs.World
}

type bodyInfo struct {
	body       *cp.Body
	shapes     []*cp.Shape
	kinematic  bool
	placements int
}

func NewPhysicsSystem(step float64) *PhysicsSystem {
	if step <= 0 {
		step = DefaultStep
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		step:     step,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Pause freezes every body in place; Update keeps syncing entities but does
// not step the space.
func (ps *PhysicsSystem) Pause() { ps.paused = true }

func (ps *PhysicsSystem) Resume() { ps.paused = false }

func (ps *PhysicsSystem) Paused() bool { return ps.paused }

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.world = w
	ps.ensureHandlers()
	ps.Sync(w)

	if ps.paused {
		return
	}

	ps.space.Step(ps.step)
	ps.syncTransforms(w)
}

// Sync creates bodies for new entities, drops bodies of dead ones and
// repositions obstacles whose pair was placed again since the last sync.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		obstacle, isObstacle := ecs.Get(w, e, component.ObstacleComponent.Kind())

		info := ps.entities[e]
		if info == nil {
			if bodyComp.Kinematic {
				info = ps.createKinematicBody(e)
			} else {
				info = ps.createDynamicBody(w, e, transform, bodyComp)
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
		}

		if isObstacle && info.kinematic && obstacle.Pair != nil && obstacle.Pair.Placements != info.placements {
			ps.rebuildObstacleShapes(info, obstacle)
			transform.X = obstacle.Pair.X
			transform.Y = 0
		}
	})
}

// SetObstacleVelocity gives every obstacle body, present and future, the same
// constant velocity.
func (ps *PhysicsSystem) SetObstacleVelocity(v cp.Vector) {
	ps.obstacleVelocity = v
	for _, info := range ps.entities {
		if info.kinematic {
			info.body.SetVelocityVector(v)
		}
	}
}

func (ps *PhysicsSystem) Velocity(e ecs.Entity) (cp.Vector, bool) {
	info, ok := ps.entities[e]
	if !ok {
		return cp.Vector{}, false
	}
	return info.body.Velocity(), true
}

func (ps *PhysicsSystem) SetVelocity(e ecs.Entity, v cp.Vector) bool {
	info, ok := ps.entities[e]
	if !ok {
		return false
	}
	info.body.SetVelocityVector(v)
	return true
}

// Impulse subtracts dy from the body's vertical velocity. The result is not
// clamped.
func (ps *PhysicsSystem) Impulse(e ecs.Entity, dy float64) bool {
	v, ok := ps.Velocity(e)
	if !ok {
		return false
	}
	return ps.SetVelocity(e, cp.Vector{X: v.X, Y: v.Y - dy})
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeObstacle)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := shapeA.Body().UserData.(ecs.Entity)
		obstacle, okB := shapeB.Body().UserData.(ecs.Entity)
		if !okA || !okB {
			return true
		}
		sys.world.Events().Push(ecs.Event{
			Type: ecs.EventCollision,
			Data: ecs.CollisionEvent{Player: player, Obstacle: obstacle},
		})
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) createDynamicBody(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// infinite moment keeps the body upright
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X + width/2, Y: transform.Y + height/2})
	body.UserData = e

	if gravity, ok := ecs.Get(w, e, component.GravityComponent.Kind()); ok {
		body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{Y: gravity.Rate}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) createKinematicBody(e ecs.Entity) *bodyInfo {
	body := cp.NewKinematicBody()
	body.UserData = e
	body.SetVelocityVector(ps.obstacleVelocity)
	ps.space.AddBody(body)

	// placements starts at -1 so the first sync always builds obstacle shapes
	return &bodyInfo{body: body, kinematic: true, placements: -1}
}

// rebuildObstacleShapes moves the pair body to the pair's x and replaces its
// two boxes. Shape geometry is local to the body, whose origin sits at
// (pair.X, 0).
func (ps *PhysicsSystem) rebuildObstacleShapes(info *bodyInfo, obstacle *component.Obstacle) {
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
	}
	info.shapes = info.shapes[:0]

	pair := obstacle.Pair
	info.body.SetPosition(cp.Vector{X: pair.X, Y: 0})

	length := obstacle.SegmentLength
	if length <= 0 {
		length = pair.UpperBottomY
	}
	upper := cp.NewBox2(info.body, cp.BB{L: 0, B: pair.UpperBottomY - length, R: pair.Width, T: pair.UpperBottomY}, 0)
	lower := cp.NewBox2(info.body, cp.BB{L: 0, B: pair.LowerTopY, R: pair.Width, T: pair.LowerTopY + length}, 0)
	for _, shape := range []*cp.Shape{upper, lower} {
		shape.SetCollisionType(collisionTypeObstacle)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	info.placements = pair.Placements
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		if info.kinematic {
			transform.X = pos.X
			transform.Y = 0
			if obstacle, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok && obstacle.Pair != nil {
				obstacle.Pair.X = pos.X
			}
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform.X = pos.X - bodyComp.Width/2
		transform.Y = pos.Y - bodyComp.Height/2
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
	}
}
