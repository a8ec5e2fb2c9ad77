package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wall builds a 5x5 grid with a vertical wall at x=1 open only at y=4.
func wall() *Grid {
	g := NewGrid(5, 5, 10)
	for y := 0; y < 4; y++ {
		g.SetBlocked(1, y, true)
	}
	return g
}

func TestGridFindPath(t *testing.T) {
	cases := []struct {
		name  string
		grid  func() *Grid
		start PathNode
		goal  PathNode
		want  int // path length, 0 = none
	}{
		{"same cell", wall, PathNode{0, 0}, PathNode{0, 0}, 1},
		{"open row", func() *Grid { return NewGrid(5, 5, 10) }, PathNode{0, 0}, PathNode{4, 0}, 5},
		{"around wall", wall, PathNode{0, 0}, PathNode{4, 0}, 13},
		{"blocked goal", wall, PathNode{0, 0}, PathNode{1, 1}, 0},
		{"out of bounds", wall, PathNode{0, 0}, PathNode{9, 9}, 0},
		{"sealed", func() *Grid {
			g := wall()
			g.SetBlocked(1, 4, true)
			return g
		}, PathNode{0, 0}, PathNode{4, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.grid().FindPath(tc.start, tc.goal)
			require.Len(t, path, tc.want)
			if tc.want == 0 {
				return
			}
			assert.Equal(t, tc.start, path[0])
			assert.Equal(t, tc.goal, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				assert.Equal(t, 1.0, heuristic(path[i-1], path[i]), "steps are 4-connected")
			}
		})
	}
}

func TestGridMaxNodes(t *testing.T) {
	g := wall()
	g.MaxNodes = 3
	assert.Nil(t, g.FindPath(PathNode{0, 0}, PathNode{4, 0}))
}

func TestGridCellMapping(t *testing.T) {
	g := NewGrid(4, 4, 8)
	assert.Equal(t, PathNode{1, 2}, g.CellOf(cp.Vector{X: 9, Y: 23}))
	assert.Equal(t, PathNode{0, 3}, g.CellOf(cp.Vector{X: -5, Y: 500}))
	assert.Equal(t, cp.Vector{X: 12, Y: 20}, g.Center(PathNode{1, 2}))
	assert.True(t, g.Blocked(-1, 0))
}

func TestGridAgentDirection(t *testing.T) {
	g := wall()
	pos := cp.Vector{X: 5, Y: 5}
	agent := NewGridAgent(g, func() cp.Vector { return pos })

	dir := agent.GetMoveDirection(cp.Vector{X: 45, Y: 5})
	assert.Equal(t, cp.Vector{Y: 1}, dir, "the wall forces the first step down")
	assert.Equal(t, 1, agent.Searches)

	agent.GetMoveDirection(cp.Vector{X: 46, Y: 6})
	assert.Equal(t, 1, agent.Searches, "same cells reuse the cached path")

	dir = agent.GetMoveDirection(cp.Vector{X: 8, Y: 8})
	assert.InDelta(t, 1, dir.Length(), 1e-9)
	assert.Equal(t, 2, agent.Searches)

	g.SetBlocked(1, 4, true)
	agent.GetMoveDirection(cp.Vector{X: 5, Y: 45})
	assert.Equal(t, cp.Vector{}, agent.GetMoveDirection(cp.Vector{X: 45, Y: 5}))
}
