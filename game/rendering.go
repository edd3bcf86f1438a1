package game

import (
	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/systems"
)

// BallView is what a front end needs to draw a ball.
type BallView struct {
	X, Y   float32
	Radius float32
	Size   int
	Color  components.Color
}

// HarpoonView is a harpoon segment from Bottom to Top at X.
type HarpoonView struct {
	X           float32
	Bottom, Top float32
	Width       float32
}

// PlayerView is the player's box and blink state.
type PlayerView struct {
	X, Y                  float32
	HalfWidth, HalfHeight float32
	Visible               bool
}

// Balls appends every live ball to dst.
func (g *Game) Balls(dst []BallView) []BallView {
	for e := range g.balls {
		pos, _, body, ball := g.ballMapper.Get(e)
		dst = append(dst, BallView{X: pos.X, Y: pos.Y, Radius: body.Radius, Size: ball.Size, Color: ball.Color})
	}
	return dst
}

// Harpoons appends every live harpoon to dst.
func (g *Game) Harpoons(dst []HarpoonView) []HarpoonView {
	for e := range g.harpoons {
		_, h := g.harpoonMapper.Get(e)
		dst = append(dst, HarpoonView{X: h.OriginX, Bottom: h.OriginY, Top: h.Tip(), Width: h.Width})
	}
	return dst
}

// Surfaces appends the level geometry to dst.
func (g *Game) Surfaces(dst []systems.SurfaceBox) []systems.SurfaceBox {
	for _, e := range g.surfaces {
		pos, surf := g.surfaceMapper.Get(e)
		dst = append(dst, systems.SurfaceBox{X: pos.X, Y: pos.Y, HalfW: surf.HalfW, HalfH: surf.HalfH, Tag: surf.Tag})
	}
	return dst
}

// Player returns the player view, or false while no player exists.
func (g *Game) Player() (PlayerView, bool) {
	if !g.hasPlayer {
		return PlayerView{}, false
	}
	pos, _, pl := g.playerMapper.Get(g.player)
	return PlayerView{
		X:          pos.X,
		Y:          pos.Y,
		HalfWidth:  pl.HalfWidth,
		HalfHeight: pl.HalfHeight,
		Visible:    g.playerParams.Visible(pl),
	}, true
}

// BackgroundColor returns the selected background colour, or black.
func (g *Game) BackgroundColor() components.Color {
	if g.background < 0 || g.background >= len(g.cfg.Backgrounds) {
		return components.Color{}
	}
	c := g.cfg.Backgrounds[g.background].Color
	return components.Color{R: c.R, G: c.G, B: c.B}
}
