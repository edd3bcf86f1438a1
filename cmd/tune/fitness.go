package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/systems"
)

// maxArcSeconds caps a single bounce simulation.
const maxArcSeconds = 10.0

// Arc is one simulated floor-to-floor bounce of a ball.
type Arc struct {
	Size   int
	Points []components.Position
	Apex   float64 // Centre height above the floor as a fraction of arena height
}

// SimulateArc drops a ball of the given size onto the floor and records its
// path until it lands again.
func SimulateArc(cfg *config.Config, size int) Arc {
	p := systems.NewBallParams(cfg)
	arena := systems.NewArena(cfg)
	surfaces := arena.WallBoxes(float32(cfg.Arena.WallThickness))
	rng := rand.New(rand.NewSource(1))
	dt := cfg.Derived.DT32

	vel, body, ball := p.NewBall(size, 1, components.Color{})
	vel.Y = 0
	pos := components.Position{X: -arena.HalfWidth * 0.5, Y: -arena.HalfHeight + body.Radius}

	arc := Arc{Size: size}
	floor := -arena.HalfHeight
	maxY := pos.Y
	bounced := false
	steps := int(maxArcSeconds / float64(dt))
	for i := 0; i < steps; i++ {
		prevVY := vel.Y
		systems.StepBall(&pos, &vel, &body, &ball, surfaces, arena, p, dt, rng)
		arc.Points = append(arc.Points, pos)

		if !bounced {
			bounced = vel.Y > 0 && prevVY <= 0
			continue
		}
		maxY = max(maxY, pos.Y)
		// Landed again
		if vel.Y > 0 && prevVY < 0 {
			break
		}
	}

	arc.Apex = float64(maxY-floor) / float64(2*arena.HalfHeight)
	return arc
}

// Evaluator scores bounce parameters by how close each size's apex lands
// to its target fraction.
type Evaluator struct {
	params  *ParamVector
	base    *config.Config
	targets []float64 // targets[i] is the apex fraction for size i+1

	mu       sync.Mutex
	lastApex []float64
}

// NewEvaluator creates an evaluator. len(targets) must equal MaxSize.
func NewEvaluator(params *ParamVector, base *config.Config, targets []float64) (*Evaluator, error) {
	if len(targets) != base.Ball.MaxSize {
		return nil, fmt.Errorf("need %d targets (one per ball size), got %d", base.Ball.MaxSize, len(targets))
	}
	for _, t := range targets {
		if t <= 0 || t >= 1 {
			return nil, fmt.Errorf("target %.3f outside (0, 1)", t)
		}
	}
	return &Evaluator{
		params:  params,
		base:    base,
		targets: targets,
	}, nil
}

// Config returns a copy of the base config with x applied.
func (e *Evaluator) Config(x []float64) *config.Config {
	cfg := *e.base
	e.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// Evaluate returns the summed squared apex error for raw parameters x
// (lower = better). Sizes are simulated in parallel.
func (e *Evaluator) Evaluate(x []float64) float64 {
	cfg := e.Config(x)

	apex := make([]float64, len(e.targets))
	var wg sync.WaitGroup
	for i := range e.targets {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			apex[idx] = SimulateArc(cfg, idx+1).Apex
		}(i)
	}
	wg.Wait()

	score := 0.0
	for i, t := range e.targets {
		d := apex[i] - t
		score += d * d
	}

	e.mu.Lock()
	e.lastApex = apex
	e.mu.Unlock()
	return score
}

// LastApex returns the apex fractions from the most recent evaluation.
func (e *Evaluator) LastApex() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.lastApex...)
}

// ParseTargets parses a comma-separated list of apex fractions.
func ParseTargets(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing target %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
