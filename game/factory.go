package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/systems"
)

var white = components.Color{R: 255, G: 255, B: 255}

// SpawnBall creates a ball of the given size at (x, y), moving left or right
// at random, and adds it to the session's ball set.
func (g *Game) SpawnBall(size int, x, y float32) ecs.Entity {
	dir := float32(1)
	if g.rng.Intn(2) == 0 {
		dir = -1
	}
	vel, body, ball := g.ballParams.NewBall(size, dir, g.randomBallColor())
	return g.addBall(components.Position{X: x, Y: y}, vel, body, ball)
}

// spawnChild creates one ball produced by a split. Children get a fresh colour.
func (g *Game) spawnChild(c systems.ChildBall) ecs.Entity {
	vel, body, ball := g.ballParams.NewBall(c.Size, c.VX, g.randomBallColor())
	vel.X, vel.Y = c.VX, c.VY
	return g.addBall(components.Position{X: c.X, Y: c.Y}, vel, body, ball)
}

func (g *Game) addBall(pos components.Position, vel components.Velocity, body components.Body, ball components.Ball) ecs.Entity {
	e := g.ballMapper.NewEntity(&pos, &vel, &body, &ball)
	g.balls[e] = struct{}{}
	g.collector.RecordBallSpawned()
	return e
}

// randomBallColor draws uniformly from the palette, or white when it is empty.
func (g *Game) randomBallColor() components.Color {
	palette := g.cfg.Palette
	if len(palette) == 0 {
		if !g.warnedPalette {
			slog.Warn("ball palette is empty, using white")
			g.warnedPalette = true
		}
		return white
	}
	c := palette[g.rng.Intn(len(palette))]
	return components.Color{R: c.R, G: c.G, B: c.B}
}

// SpawnPlayer creates the player at (x, y), replacing any existing one.
func (g *Game) SpawnPlayer(x, y float32) ecs.Entity {
	g.destroyPlayer()
	pos, vel, pl := g.playerParams.NewPlayer(x, y)
	g.player = g.playerMapper.NewEntity(&pos, &vel, &pl)
	g.hasPlayer = true
	return g.player
}

// launchHarpoon creates a harpoon anchored at (x, y).
func (g *Game) launchHarpoon(x, y float32) ecs.Entity {
	pos, h := g.harpoonParams.NewHarpoon(x, y)
	e := g.harpoonMapper.NewEntity(&pos, &h)
	g.harpoons[e] = struct{}{}
	return e
}

// spawnSurface creates a static surface box.
func (g *Game) spawnSurface(b systems.SurfaceBox) ecs.Entity {
	pos := components.Position{X: b.X, Y: b.Y}
	surf := components.Surface{HalfW: b.HalfW, HalfH: b.HalfH, Tag: b.Tag}
	e := g.surfaceMapper.NewEntity(&pos, &surf)
	g.surfaces = append(g.surfaces, e)
	return e
}

func (g *Game) destroyBall(e ecs.Entity) {
	if _, ok := g.balls[e]; !ok {
		return
	}
	delete(g.balls, e)
	g.world.RemoveEntity(e)
}

func (g *Game) destroyHarpoon(e ecs.Entity) {
	if _, ok := g.harpoons[e]; !ok {
		return
	}
	delete(g.harpoons, e)
	g.world.RemoveEntity(e)
}

func (g *Game) destroyPlayer() {
	if !g.hasPlayer {
		return
	}
	g.world.RemoveEntity(g.player)
	g.hasPlayer = false
}

// destroyBallsAndHarpoons clears both owned sets.
func (g *Game) destroyBallsAndHarpoons() {
	for e := range g.balls {
		g.world.RemoveEntity(e)
	}
	clear(g.balls)
	for e := range g.harpoons {
		g.world.RemoveEntity(e)
	}
	clear(g.harpoons)
}

func (g *Game) destroySurfaces() {
	for _, e := range g.surfaces {
		g.world.RemoveEntity(e)
	}
	g.surfaces = g.surfaces[:0]
}
