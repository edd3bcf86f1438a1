package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/pang/config"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// ParseWave maps a config wave name to a WaveType.
func ParseWave(name string) (WaveType, error) {
	switch name {
	case "", "sine":
		return WaveSine, nil
	case "square":
		return WaveSquare, nil
	case "saw":
		return WaveSaw, nil
	case "noise":
		return WaveNoise, nil
	}
	return WaveSine, fmt.Errorf("unknown wave %q", name)
}

// sweepOscillator generates a single cue whose frequency moves linearly
// from freq to freq+sweep over its duration, with a short attack and a
// linear release so cues don't click.
type sweepOscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	position int
	total    int
	attack   int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newSweepOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) *sweepOscillator {
	total := rate.N(duration)
	return &sweepOscillator{
		freq:   freq,
		sweep:  sweep,
		total:  total,
		attack: min(rate.N(5*time.Millisecond), total/4),
		wave:   wave,
		rate:   rate,
		rng:    rng,
	}
}

func (o *sweepOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		val *= o.envelope()
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.total)
		freq := o.freq + o.sweep*progress
		if freq < 0 {
			freq = 0
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweepOscillator) Err() error { return nil }

// envelope returns the gain at the current position: ramp up over the
// attack, then fall linearly to zero at the end of the cue.
func (o *sweepOscillator) envelope() float64 {
	if o.attack > 0 && o.position < o.attack {
		return float64(o.position) / float64(o.attack)
	}
	releaseLen := o.total - o.attack
	if releaseLen <= 0 {
		return 1
	}
	return float64(o.total-o.position) / float64(releaseLen)
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero
// volume is expressed as Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewCue builds a finite streamer for one configured sound.
func NewCue(sc config.SoundConfig, rate beep.SampleRate, rng *rand.Rand) (beep.Streamer, error) {
	wave, err := ParseWave(sc.Wave)
	if err != nil {
		return nil, fmt.Errorf("sound %q: %w", sc.Name, err)
	}
	if sc.DurationMs <= 0 {
		return nil, fmt.Errorf("sound %q: duration_ms must be > 0", sc.Name)
	}
	duration := time.Duration(sc.DurationMs) * time.Millisecond
	osc := newSweepOscillator(sc.Frequency, sc.Sweep, duration, wave, rate, rng)
	return newVolume(osc, sc.Volume), nil
}
