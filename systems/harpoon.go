package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
)

// HarpoonParams holds projectile tuning values.
type HarpoonParams struct {
	Speed         float32
	MaxLength     float32
	Width         float32
	InitialLength float32
}

// NewHarpoonParams extracts harpoon parameters from config.
func NewHarpoonParams(cfg *config.Config) HarpoonParams {
	h := cfg.Harpoon
	return HarpoonParams{
		Speed:         float32(h.Speed),
		MaxLength:     float32(h.MaxLength),
		Width:         float32(h.Width),
		InitialLength: float32(h.InitialLength),
	}
}

// NewHarpoon builds a harpoon anchored at (x, y) and its initial position.
func (p HarpoonParams) NewHarpoon(x, y float32) (components.Position, components.Harpoon) {
	h := components.Harpoon{
		OriginX:   x,
		OriginY:   y,
		Length:    p.InitialLength,
		MaxLength: p.MaxLength,
		Width:     p.Width,
		Speed:     p.Speed,
	}
	cx, cy := h.Center()
	return components.Position{X: cx, Y: cy}, h
}

// ExtendHarpoon grows the harpoon by one tick and reports whether it has
// expired, either at full length or with its tip at the top of the arena.
func ExtendHarpoon(pos *components.Position, h *components.Harpoon, arena Arena, dt float32) bool {
	h.Length += h.Speed * dt
	expired := false
	if h.Length >= h.MaxLength {
		h.Length = h.MaxLength
		expired = true
	}
	pos.X, pos.Y = h.Center()
	return expired || h.Tip() >= arena.HalfHeight
}

// HarpoonTouches reports whether the harpoon segment overlaps a circle.
func HarpoonTouches(h *components.Harpoon, cx, cy, r float32) bool {
	x, y := h.Center()
	return BoxCircleOverlap(x, y, h.Width*0.5, h.Length*0.5, cx, cy, r)
}

// HarpoonTouchesBox reports whether the harpoon segment overlaps a box.
func HarpoonTouchesBox(h *components.Harpoon, s *SurfaceBox) bool {
	x, y := h.Center()
	hw, hh := h.Width*0.5, h.Length*0.5
	return absf(x-s.X) < hw+s.HalfW && absf(y-s.Y) < hh+s.HalfH
}

// BallRef is a snapshot of a live ball used for hit tests.
type BallRef struct {
	Entity ecs.Entity
	X, Y   float32
	Radius float32
}

// HarpoonHit pairs a harpoon with the single ball it struck.
type HarpoonHit struct {
	Harpoon ecs.Entity
	Ball    ecs.Entity
}

// HarpoonResult lists the structural changes a harpoon tick requests.
type HarpoonResult struct {
	Hits    []HarpoonHit
	Expired []ecs.Entity // Reached max length, the arena top or the ceiling
}

// HarpoonSystem extends harpoons and resolves their hits.
type HarpoonSystem struct {
	harpoons *ecs.Filter2[components.Position, components.Harpoon]
	balls    *ecs.Filter3[components.Position, components.Body, components.Ball]
	surfaces *ecs.Filter2[components.Position, components.Surface]
	arena    Arena

	ballRefs []BallRef
	boxes    []SurfaceBox
	struck   map[ecs.Entity]bool
	result   HarpoonResult
}

// NewHarpoonSystem creates a new harpoon system.
func NewHarpoonSystem(w *ecs.World, arena Arena) *HarpoonSystem {
	return &HarpoonSystem{
		harpoons: ecs.NewFilter2[components.Position, components.Harpoon](w),
		balls:    ecs.NewFilter3[components.Position, components.Body, components.Ball](w),
		surfaces: ecs.NewFilter2[components.Position, components.Surface](w),
		arena:    arena,
		struck:   make(map[ecs.Entity]bool),
	}
}

// Update extends every harpoon by dt. Each harpoon strikes at most one ball,
// the first found in its overlap, and each ball is struck at most once per tick.
// The caller applies the returned removals after the query completes.
// The result is reused by the next call.
func (s *HarpoonSystem) Update(dt float32) *HarpoonResult {
	s.result.Hits = s.result.Hits[:0]
	s.result.Expired = s.result.Expired[:0]
	clear(s.struck)

	s.ballRefs = CollectBalls(s.balls, s.ballRefs[:0])
	s.boxes = CollectSurfaces(s.surfaces, s.boxes[:0])

	query := s.harpoons.Query()
	for query.Next() {
		pos, h := query.Get()
		e := query.Entity()
		expired := ExtendHarpoon(pos, h, s.arena, dt)

		if ball, ok := s.firstBall(h); ok {
			s.struck[ball] = true
			s.result.Hits = append(s.result.Hits, HarpoonHit{Harpoon: e, Ball: ball})
			continue
		}
		if expired || s.touchesCeiling(h) {
			s.result.Expired = append(s.result.Expired, e)
		}
	}
	return &s.result
}

func (s *HarpoonSystem) firstBall(h *components.Harpoon) (ecs.Entity, bool) {
	for i := range s.ballRefs {
		b := &s.ballRefs[i]
		if s.struck[b.Entity] {
			continue
		}
		if HarpoonTouches(h, b.X, b.Y, b.Radius) {
			return b.Entity, true
		}
	}
	return ecs.Entity{}, false
}

func (s *HarpoonSystem) touchesCeiling(h *components.Harpoon) bool {
	for i := range s.boxes {
		if s.boxes[i].Tag == components.TagCeiling && HarpoonTouchesBox(h, &s.boxes[i]) {
			return true
		}
	}
	return false
}

// CollectBalls appends a snapshot of every live ball to dst.
func CollectBalls(f *ecs.Filter3[components.Position, components.Body, components.Ball], dst []BallRef) []BallRef {
	query := f.Query()
	for query.Next() {
		pos, body, _ := query.Get()
		dst = append(dst, BallRef{Entity: query.Entity(), X: pos.X, Y: pos.Y, Radius: body.Radius})
	}
	return dst
}
