package systems

import (
	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
)

// Arena is the playable rectangle, centred on the origin.
type Arena struct {
	HalfWidth, HalfHeight float32
}

// NewArena builds the arena bounds from config.
func NewArena(cfg *config.Config) Arena {
	return Arena{HalfWidth: cfg.Derived.ArenaW32, HalfHeight: cfg.Derived.ArenaH32}
}

// Contains reports whether a circle of radius r at (x, y) lies fully inside the arena.
func (a Arena) Contains(x, y, r float32) bool {
	return x >= -a.HalfWidth+r && x <= a.HalfWidth-r &&
		y >= -a.HalfHeight+r && y <= a.HalfHeight-r
}

// SurfaceBox is a snapshot of one static surface, taken once per tick.
type SurfaceBox struct {
	X, Y         float32
	HalfW, HalfH float32
	Tag          components.SurfaceTag
}

// WallBoxes returns the four boundary surfaces placed just outside the arena.
// The floor and side walls are tagged Wall; the top is tagged Ceiling.
func (a Arena) WallBoxes(thickness float32) []SurfaceBox {
	ht := thickness * 0.5
	spanW := a.HalfWidth + thickness
	spanH := a.HalfHeight + thickness
	return []SurfaceBox{
		{X: -a.HalfWidth - ht, Y: 0, HalfW: ht, HalfH: spanH, Tag: components.TagWall},
		{X: a.HalfWidth + ht, Y: 0, HalfW: ht, HalfH: spanH, Tag: components.TagWall},
		{X: 0, Y: -a.HalfHeight - ht, HalfW: spanW, HalfH: ht, Tag: components.TagWall},
		{X: 0, Y: a.HalfHeight + ht, HalfW: spanW, HalfH: ht, Tag: components.TagCeiling},
	}
}
