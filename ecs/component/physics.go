package component

import "github.com/milk9111/bestiary/physics"

// PhysicsBody links an entity to its chipmunk body.
type PhysicsBody struct {
	Body *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
