package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/systems"
)

func TestSimulateArcMatchesBallistics(t *testing.T) {
	cfg := config.MustLoad("")
	p := systems.NewBallParams(cfg)
	h := 2 * cfg.Arena.HalfHeight

	for size := 1; size <= cfg.Ball.MaxSize; size++ {
		arc := SimulateArc(cfg, size)
		j := float64(p.JumpForce(size))
		g := float64(p.Gravity)
		r := float64(p.Radius(size))
		want := (r + j*j/(2*g)) / h
		if want >= 1 {
			continue
		}
		if math.Abs(arc.Apex-want) > 0.15/h+0.02 {
			t.Errorf("size %d: apex = %.3f, want ~%.3f", size, arc.Apex, want)
		}
		if len(arc.Points) == 0 {
			t.Errorf("size %d: no points recorded", size)
		}
	}
}

func TestLargerBallsBounceHigher(t *testing.T) {
	cfg := config.MustLoad("")
	prev := 0.0
	for size := 1; size <= cfg.Ball.MaxSize; size++ {
		apex := SimulateArc(cfg, size).Apex
		if apex <= prev {
			t.Errorf("size %d apex %.3f not above size %d apex %.3f", size, apex, size-1, prev)
		}
		prev = apex
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"0.35,0.5,0.65", []float64{0.35, 0.5, 0.65}, false},
		{" 0.2 , 0.4 ", []float64{0.2, 0.4}, false},
		{"0.3,high", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTargets(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewEvaluatorValidatesTargets(t *testing.T) {
	cfg := config.MustLoad("")
	params := NewParamVector()

	if _, err := NewEvaluator(params, cfg, []float64{0.5}); err == nil {
		t.Error("expected error for wrong target count")
	}
	if _, err := NewEvaluator(params, cfg, []float64{0.3, 0.5, 1.2}); err == nil {
		t.Error("expected error for target outside (0, 1)")
	}
}

func TestEvaluateScoresOwnApex(t *testing.T) {
	cfg := config.MustLoad("")
	params := NewParamVector()

	// Targets taken from the current parameters score (near) zero
	targets := make([]float64, cfg.Ball.MaxSize)
	for i := range targets {
		targets[i] = SimulateArc(cfg, i+1).Apex
	}
	e, err := NewEvaluator(params, cfg, targets)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	x := params.ExtractFromConfig(cfg)
	if got := e.Evaluate(x); got > 1e-9 {
		t.Errorf("fitness at own apex = %g, want ~0", got)
	}

	// Halving the jump height moves every apex away from its target
	worse := append([]float64(nil), x...)
	worse[0] = x[0] * 0.5
	if got := e.Evaluate(worse); got <= 1e-4 {
		t.Errorf("fitness with halved jump = %g, want clearly above 0", got)
	}
	if len(e.LastApex()) != len(targets) {
		t.Errorf("LastApex has %d entries, want %d", len(e.LastApex()), len(targets))
	}

	// Evaluate must not mutate the base config
	if cfg.Ball.BaseJumpHeight != x[0] {
		t.Errorf("base config mutated: %f", cfg.Ball.BaseJumpHeight)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %f -> %f", pv.Specs[i].Name, raw[i], back[i])
		}
	}

	clamped := pv.Clamp([]float64{100, -1, 1})
	if clamped[0] != pv.Specs[0].Max || clamped[1] != pv.Specs[1].Min || clamped[2] != 1 {
		t.Errorf("Clamp = %v", clamped)
	}

	cfg := config.MustLoad("")
	pv.ApplyToConfig(cfg, []float64{4, 0.25, 1.5})
	got := pv.ExtractFromConfig(cfg)
	want := []float64{4, 0.25, 1.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractFromConfig[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}
