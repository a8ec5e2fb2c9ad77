package component

import (
	"github.com/jakecoffman/cp"
	animation "github.com/milk9111/bestiary/component"
	"github.com/milk9111/bestiary/enemy"
)

// Enemy links an entity to its AI context and the per-enemy collaborators
// the systems drive.
type Enemy struct {
	Enemy    *enemy.Enemy
	Animator *animation.Animator
	Agent    *animation.GridAgent

	Prefab       string
	Spawn        cp.Vector
	AggroRadius  float64
	StrikeRadius float64
}

var EnemyComponent = NewComponent[Enemy]()
