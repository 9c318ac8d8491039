package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Kinematic bodies are moved only by their velocity and are never pushed by
// contacts.
type PhysicsBody struct {
	Body      *cp.Body
	Width     float64
	Height    float64
	Mass      float64
	Kinematic bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
