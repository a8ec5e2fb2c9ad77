package component

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"
)

// defaultMaxNodes bounds a single search.
const defaultMaxNodes = 4096

// PathNode represents a grid cell in an A* path.
type PathNode struct {
	X int
	Y int
}

// Grid is a 4-connected navigation grid in world units. Cell (0,0) covers
// [0,CellSize) on both axes.
type Grid struct {
	Width    int
	Height   int
	CellSize float64
	MaxNodes int

	blocked []bool
}

func NewGrid(width, height int, cellSize float64) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		MaxNodes: defaultMaxNodes,
		blocked:  make([]bool, width*height),
	}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *Grid) SetBlocked(x, y int, blocked bool) {
	if g.InBounds(x, y) {
		g.blocked[y*g.Width+x] = blocked
	}
}

// Blocked reports whether a cell is impassable. Cells outside the grid are.
func (g *Grid) Blocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.blocked[y*g.Width+x]
}

// CellOf maps a world position to its cell, clamped to the grid.
func (g *Grid) CellOf(p cp.Vector) PathNode {
	x := int(math.Floor(p.X / g.CellSize))
	y := int(math.Floor(p.Y / g.CellSize))
	return PathNode{X: clampInt(x, 0, g.Width-1), Y: clampInt(y, 0, g.Height-1)}
}

// Center returns the world position of a cell's center.
func (g *Grid) Center(n PathNode) cp.Vector {
	half := g.CellSize * 0.5
	return cp.Vector{X: float64(n.X)*g.CellSize + half, Y: float64(n.Y)*g.CellSize + half}
}

// BlockedCells lists every impassable cell.
func (g *Grid) BlockedCells() []PathNode {
	var out []PathNode
	for i, b := range g.blocked {
		if b {
			out = append(out, PathNode{X: i % g.Width, Y: i / g.Width})
		}
	}
	return out
}

// FindPath returns the cells from start to goal inclusive, or nil when the
// goal is unreachable within MaxNodes expansions.
func (g *Grid) FindPath(start, goal PathNode) []PathNode {
	if g.Width <= 0 || g.Height <= 0 {
		return nil
	}
	if g.Blocked(start.X, start.Y) || g.Blocked(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []PathNode{start}
	}

	n := g.Width * g.Height
	cameFrom := make([]int, n)
	gScore := make([]float64, n)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}

	startIdx := start.Y*g.Width + start.X
	goalIdx := goal.Y*g.Width + goal.X
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Push(open, &openItem{node: start, f: heuristic(start, goal)})

	maxNodes := g.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}

	for expanded := 0; open.Len() > 0 && expanded < maxNodes; expanded++ {
		cur := heap.Pop(open).(*openItem)
		curIdx := cur.node.Y*g.Width + cur.node.X
		if curIdx == goalIdx {
			return g.reconstruct(cameFrom, startIdx, goalIdx)
		}
		if cur.g > gScore[curIdx] {
			continue
		}
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nb := PathNode{X: cur.node.X + d[0], Y: cur.node.Y + d[1]}
			if g.Blocked(nb.X, nb.Y) {
				continue
			}
			idx := nb.Y*g.Width + nb.X
			tentative := gScore[curIdx] + 1
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				heap.Push(open, &openItem{node: nb, g: tentative, f: tentative + heuristic(nb, goal)})
			}
		}
	}
	return nil
}

func (g *Grid) reconstruct(cameFrom []int, startIdx, goalIdx int) []PathNode {
	path := make([]PathNode, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, PathNode{X: cur % g.Width, Y: cur / g.Width})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// GridAgent steers one mover across a Grid. The last path is cached until
// either endpoint changes cell.
type GridAgent struct {
	Grid     *Grid
	Position func() cp.Vector

	// Searches counts A* runs, for tuning the cache.
	Searches int

	path     []PathNode
	fromCell PathNode
	goalCell PathNode
	hasPath  bool
}

func NewGridAgent(grid *Grid, position func() cp.Vector) *GridAgent {
	return &GridAgent{Grid: grid, Position: position}
}

// GetMoveDirection returns a unit vector toward the next cell on the path to
// target, or the zero vector when no path exists.
func (a *GridAgent) GetMoveDirection(target cp.Vector) cp.Vector {
	if a.Grid == nil || a.Position == nil {
		return cp.Vector{}
	}
	pos := a.Position()
	from := a.Grid.CellOf(pos)
	goal := a.Grid.CellOf(target)

	if !a.hasPath || from != a.fromCell || goal != a.goalCell {
		a.path = a.Grid.FindPath(from, goal)
		a.fromCell, a.goalCell, a.hasPath = from, goal, true
		a.Searches++
	}

	switch len(a.path) {
	case 0:
		return cp.Vector{}
	case 1:
		return unit(target.Sub(pos))
	}
	return unit(a.Grid.Center(a.path[1]).Sub(pos))
}

// Path returns the cached path.
func (a *GridAgent) Path() []PathNode { return a.path }

func unit(v cp.Vector) cp.Vector {
	if v.LengthSq() == 0 {
		return cp.Vector{}
	}
	return v.Normalize()
}

func heuristic(a, b PathNode) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type openItem struct {
	node  PathNode
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
