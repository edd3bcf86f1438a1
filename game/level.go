package game

import (
	"log/slog"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/systems"
)

// buildLevel replaces the level geometry: boundary walls, the configured
// platforms for this level and min(level, max_obstacles) random obstacles.
func (g *Game) buildLevel(level int) {
	g.destroySurfaces()

	for _, b := range g.arena.WallBoxes(float32(g.cfg.Arena.WallThickness)) {
		g.spawnSurface(b)
	}

	if lc := g.cfg.Derived.LevelsByID[level]; lc != nil {
		for _, p := range lc.Platforms {
			g.spawnSurface(systems.SurfaceBox{
				X:     float32(p.X),
				Y:     float32(p.Y),
				HalfW: float32(p.Width) * 0.5,
				HalfH: float32(p.Height) * 0.5,
				Tag:   components.TagWall,
			})
		}
	}

	obstacles := min(level, g.cfg.Arena.MaxObstacles)
	half := float32(g.cfg.Arena.ObstacleSize) * 0.5
	w, h := g.arena.HalfWidth, g.arena.HalfHeight
	for i := 0; i < obstacles; i++ {
		g.spawnSurface(systems.SurfaceBox{
			X:     randRange(g.rng, -w+1, w-1),
			Y:     randRange(g.rng, -h+2, h-1),
			HalfW: half,
			HalfH: half,
			Tag:   components.TagWall,
		})
	}

	g.selectBackground(level)
}

// selectBackground picks background (level-1) mod count, or none.
func (g *Game) selectBackground(level int) {
	n := len(g.cfg.Backgrounds)
	if n == 0 {
		if !g.warnedBackground {
			slog.Warn("no backgrounds configured, skipping background selection")
			g.warnedBackground = true
		}
		g.background = -1
		return
	}
	g.background = mod(level-1, n)
}

// spawnInitialBalls spawns the opening set: initial_ball_count size-max balls
// at x = -3 + 6i, spawn_height.
func (g *Game) spawnInitialBalls() {
	b := g.cfg.Ball
	startX := float32(-b.SpawnSpan * 0.5)
	for i := 0; i < g.cfg.Session.InitialBallCount; i++ {
		g.SpawnBall(b.MaxSize, startX+float32(i)*float32(b.SpawnSpan), float32(b.SpawnHeight))
	}
}

// spawnLevelBalls spawns one size-max ball per level number, evenly spaced
// over the spawn span.
func (g *Game) spawnLevelBalls(level int) {
	b := g.cfg.Ball
	n := max(level, 1)
	spacing := float32(b.SpawnSpan) / float32(n)
	startX := float32(-b.SpawnSpan*0.5) + spacing*0.5
	for i := 0; i < n; i++ {
		g.SpawnBall(b.MaxSize, startX+float32(i)*spacing, float32(b.SpawnHeight))
	}
}
