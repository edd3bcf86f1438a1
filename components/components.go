// Package components defines ECS components for the simulation.
package components

// Position represents an entity's world position (arena units, origin centred, +Y up).
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in units per second.
type Velocity struct {
	X, Y float32
}

// Color is an 8-bit RGB colour used by renderers.
type Color struct {
	R, G, B uint8
}

// Ball holds the size tier and the size-derived motion parameters of a ball.
// Size is always >= 1. Speed and JumpForce are fixed at spawn.
type Ball struct {
	Size       int
	Speed      float32 // Horizontal speed restored by bounces and the speed floor
	JumpForce  float32 // Vertical speed given by a floor bounce
	StuckTimer float32 // Accumulates simulated time between stuck checks
	Color      Color
}

// Harpoon is an upward-extending segment anchored at a fixed origin.
// The segment spans [OriginY, OriginY+Length] and is Width wide.
type Harpoon struct {
	OriginX, OriginY float32
	Length           float32
	MaxLength        float32
	Width            float32
	Speed            float32
}

// Tip returns the y coordinate of the leading edge.
func (h *Harpoon) Tip() float32 {
	return h.OriginY + h.Length
}

// Center returns the segment centre, origin + up*length/2.
func (h *Harpoon) Center() (float32, float32) {
	return h.OriginX, h.OriginY + h.Length*0.5
}

// Player holds controller state. The player moves horizontally only.
type Player struct {
	HalfWidth, HalfHeight float32
	SmoothVel             float32 // Velocity-of-velocity carried by the damping filter
	Invulnerable          bool
	InvulnRemaining       float32
	FireCooldown          float32
}

// SurfaceTag classifies solid level geometry.
type SurfaceTag uint8

const (
	TagWall    SurfaceTag = iota // Side walls, floor, platforms, obstacles
	TagCeiling                   // Top of the arena; stops harpoons
)

func (t SurfaceTag) String() string {
	switch t {
	case TagWall:
		return "wall"
	case TagCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// Surface is a static axis-aligned box centred on the entity's Position.
type Surface struct {
	HalfW, HalfH float32
	Tag          SurfaceTag
}
