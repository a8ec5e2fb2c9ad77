package component

// Transform is the world-space position mirrored from physics each step.
type Transform struct {
	X           float64
	Y           float64
	FacingRight bool
}

var TransformComponent = NewComponent[Transform]()
