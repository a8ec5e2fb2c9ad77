// Package levels loads arena layouts: a tile grid whose physics layers become
// walls, plus the entity spawns placed on it.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jakecoffman/cp"
	animation "github.com/milk9111/bestiary/component"
)

//go:embed *.json
var LevelsFS embed.FS

const defaultCellSize = 16

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	CellSize  float64     `json:"cell_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a spawn placed on a cell. Type is "player" or "enemy"; enemies
// name their prefab.
type Entity struct {
	Type   string `json:"type"`
	Prefab string `json:"prefab,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if lvl.CellSize <= 0 {
		lvl.CellSize = defaultCellSize
	}
	grid := lvl.Grid()
	for _, e := range lvl.Entities {
		if grid.Blocked(e.X, e.Y) {
			return nil, fmt.Errorf("%w: %s spawn at blocked cell (%d,%d)", ErrInvalidLevel, e.Type, e.X, e.Y)
		}
		if e.Type == "enemy" && e.Prefab == "" {
			return nil, fmt.Errorf("%w: enemy spawn at (%d,%d) has no prefab", ErrInvalidLevel, e.X, e.Y)
		}
	}
	return &lvl, nil
}

// Grid builds the navigation grid. Non-zero tiles on physics layers block.
// Layers without meta are decorative.
func (l *Level) Grid() *animation.Grid {
	g := animation.NewGrid(l.Width, l.Height, l.CellSize)
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for idx, tile := range layer {
			if tile != 0 {
				g.SetBlocked(idx%l.Width, idx/l.Width, true)
			}
		}
	}
	return g
}

// Position returns the world-space center of a spawn's cell.
func (l *Level) Position(e Entity) cp.Vector {
	half := l.CellSize * 0.5
	return cp.Vector{X: float64(e.X)*l.CellSize + half, Y: float64(e.Y)*l.CellSize + half}
}

// Player returns the first player spawn.
func (l *Level) Player() (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == "player" {
			return e, true
		}
	}
	return Entity{}, false
}

// Enemies returns the enemy spawns in file order.
func (l *Level) Enemies() []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == "enemy" {
			out = append(out, e)
		}
	}
	return out
}
