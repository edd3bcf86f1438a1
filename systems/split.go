package systems

import (
	"math/rand"

	"github.com/pthm-cable/pang/components"
)

// ChildBall describes one ball produced by a split.
type ChildBall struct {
	Size   int
	X, Y   float32
	VX, VY float32
}

// SplitPoints returns the score awarded for hitting a ball of the given size.
// The award grows as balls shrink; a size-1 ball is worth four times the base.
func (p BallParams) SplitPoints(size int) int {
	if size <= 1 {
		return p.BasePoints * 4
	}
	return p.BasePoints * (p.MaxSize + 2 - size)
}

// SplitBall resolves a hit on a ball. A ball larger than size 1 yields two
// children one size down, offset left and right and moving outward. Each child
// inherits the parent's vertical velocity plus jitter, floored to a positive value.
// A size-1 ball yields no children. The caller destroys the parent in both cases.
func SplitBall(pos components.Position, vel components.Velocity, ball components.Ball,
	p BallParams, rng *rand.Rand) (children []ChildBall, points int) {
	points = p.SplitPoints(ball.Size)
	if ball.Size <= 1 {
		return nil, points
	}

	size := ball.Size - 1
	speed := p.Speed(size)
	children = make([]ChildBall, 2)
	for i, dir := range [2]float32{-1, 1} {
		vy := vel.Y + (rng.Float32()*2-1)*p.SplitJitter
		if vy <= 0 {
			vy = p.MinSplitVY
		}
		children[i] = ChildBall{
			Size: size,
			X:    pos.X + dir*p.SplitOffset,
			Y:    pos.Y,
			VX:   dir * speed,
			VY:   vy,
		}
	}
	return children, points
}
