package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/arena"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	hudHeight   = 112
	strikeRange = 24
	strikeDmg   = 1
	feedLines   = 6
)

var speciesColors = map[prefabs.Species]color.Color{
	prefabs.SpeciesGeneric:  colornames.Lightgrey,
	prefabs.SpeciesWolf:     colornames.Slategray,
	prefabs.SpeciesBadger:   colornames.Saddlebrown,
	prefabs.SpeciesScripted: colornames.Mediumpurple,
}

type GameOptions struct {
	Level  string
	Seed   int64
	Debug  bool
	Logger *logrus.Logger
}

type Game struct {
	arena   *arena.Arena
	hud     *HUD
	watcher *prefabs.Watcher
	log     logrus.FieldLogger

	width, height int
	debug         bool
	paused        bool
	clipboardOK   bool
	feed          []string
}

func NewGame(opts GameOptions) (*Game, error) {
	a, err := arena.New(arena.Options{Level: opts.Level, Seed: opts.Seed, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	g := &Game{
		arena:  a,
		log:    opts.Logger,
		width:  int(float64(a.Level.Width) * a.Level.CellSize),
		height: int(float64(a.Level.Height)*a.Level.CellSize) + hudHeight,
		debug:  opts.Debug,
	}
	a.Handle(g.record)

	if err := clipboard.Init(); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
	} else {
		g.clipboardOK = true
	}

	if w, err := prefabs.NewWatcher(watchDirs(prefabs.DiskRoot)...); err != nil {
		g.log.WithError(err).WithField("dir", prefabs.DiskRoot).Info("prefab hot reload disabled")
	} else {
		g.watcher = w
	}

	g.hud = NewHUD(g)
	return g, nil
}

// watchDirs returns root and its scripts directory, skipping the script
// directory when it does not exist.
func watchDirs(root string) []string {
	dirs := []string{root}
	if info, err := os.Stat(filepath.Join(root, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(root, "scripts"))
	}
	return dirs
}

// Close stops the prefab watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	g.hud.Update()

	g.pollReload()
	if g.paused {
		return nil
	}

	g.arena.MovePlayer(inputDirection())
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.arena.Strike(strikeRange, strikeDmg)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	g.arena.Update(1 / float64(ebiten.TPS()))
	return nil
}

func inputDirection() cp.Vector {
	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	return dir
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			g.log.WithError(err).Warn("prefab watcher error")
		}
	default:
	}
	paths := g.watcher.Poll()
	if len(paths) == 0 {
		return
	}
	if _, err := g.arena.Reload(paths); err != nil {
		g.log.WithError(err).Error("prefab reload failed")
		g.push(fmt.Sprintf("reload failed: %v", err))
	}
}

func (g *Game) copyState() {
	if !g.clipboardOK {
		g.push("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.arena.Snapshot()))
	g.push("state copied to clipboard")
}

func (g *Game) reset() {
	if _, err := g.arena.Reset(); err != nil {
		g.log.WithError(err).Error("arena reset failed")
	}
	g.push("arena reset")
}

func (g *Game) record(ev ecs.Event) {
	switch data := ev.Data.(type) {
	case ecs.Transition:
		g.push(fmt.Sprintf("%s %s -> %s", data.Enemy, data.From, data.To))
	case ecs.Hit:
		g.push(fmt.Sprintf("%s %s -%d (%d left)", ev.Kind, ev.Entity, data.Amount, data.Remaining))
	case []string:
		g.push(fmt.Sprintf("reloaded %v", data))
	}
}

func (g *Game) push(line string) {
	g.feed = append(g.feed, line)
	if len(g.feed) > feedLines {
		g.feed = g.feed[len(g.feed)-feedLines:]
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.drawLevel(screen)
	g.drawProjectiles(screen)
	g.drawEnemies(screen)
	g.drawPlayer(screen)

	hp := g.arena.PlayerHealth()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("HP: %d/%d    Frame: %d    FPS: %.2f", hp.Current, hp.Max, g.arena.World.Frame(), ebiten.ActualFPS()))
	g.hud.Draw(screen)
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	lvl := g.arena.Level
	cs := float32(lvl.CellSize)
	for i, layer := range lvl.Layers {
		for idx, tile := range layer {
			if tile == 0 {
				continue
			}
			clr := color.Color(colornames.Darkslateblue)
			if i >= len(lvl.LayerMeta) || !lvl.LayerMeta[i].Physics {
				clr = colornames.Darkolivegreen
			}
			x := float32(idx%lvl.Width) * cs
			y := float32(idx/lvl.Width) * cs
			vector.FillRect(screen, x, y, cs, cs, clr, false)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	w := g.arena.World
	tr, ok := ecs.Get(w, g.arena.Player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	p, _ := ecs.Get(w, g.arena.Player, component.PlayerComponent.Kind())
	hp := g.arena.PlayerHealth()

	clr := color.Color(colornames.Gold)
	switch {
	case hp.Current <= 0:
		clr = colornames.Dimgray
	case hp.Invulnerable > 0:
		clr = colornames.White
	}
	vector.FillCircle(screen, float32(tr.X), float32(tr.Y), float32(p.Radius), clr, true)
	if g.debug {
		vector.StrokeCircle(screen, float32(tr.X), float32(tr.Y), strikeRange, 1, colornames.Gold, true)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, v := range g.arena.Enemies() {
		en, _ := ecs.Get(g.arena.World, v.Entity, component.EnemyComponent.Kind())
		clr, ok := speciesColors[en.Enemy.Species()]
		if !ok {
			clr = colornames.Red
		}
		if v.Health <= 0 {
			clr = colornames.Dimgray
		}
		x, y := float32(v.X), float32(v.Y)
		vector.FillCircle(screen, x, y, 6, clr, true)

		// facing tick
		dx := float32(-8)
		if v.Facing {
			dx = 8
		}
		vector.StrokeLine(screen, x, y, x+dx, y, 2, colornames.Crimson, true)

		if g.debug {
			vector.StrokeCircle(screen, x, y, float32(en.AggroRadius), 1, colornames.Lightgrey, true)
			vector.StrokeCircle(screen, x, y, float32(en.StrikeRadius), 1, colornames.Crimson, true)
			if en.Agent != nil {
				g.drawPath(screen, en)
			}
		}
		label := v.State
		if v.Leader {
			label += "*"
		}
		ebitenutil.DebugPrintAt(screen, label, int(v.X)-12, int(v.Y)-22)
	}
}

func (g *Game) drawPath(screen *ebiten.Image, en *component.Enemy) {
	grid := g.arena.Grid
	path := en.Agent.Path()
	for i := 1; i < len(path); i++ {
		a, b := grid.Center(path[i-1]), grid.Center(path[i])
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, colornames.Lightgreen, false)
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image) {
	ecs.ForEach2(g.arena.World, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), float32(p.Radius), colornames.Orange, true)
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
