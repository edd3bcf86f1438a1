package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/pang/config"
)

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if a := math.Abs(buf[i][0]); a > peak {
				peak = a
			}
			if buf[i][0] != buf[i][1] {
				panic("channels differ")
			}
		}
		samples += n
		if !ok || n == 0 {
			return samples, peak
		}
	}
}

func TestParseWave(t *testing.T) {
	tests := []struct {
		in      string
		want    WaveType
		wantErr bool
	}{
		{"sine", WaveSine, false},
		{"", WaveSine, false},
		{"square", WaveSquare, false},
		{"saw", WaveSaw, false},
		{"noise", WaveNoise, false},
		{"triangle", WaveSine, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWave(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWave(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCueLengthAndVolume(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		sc   config.SoundConfig
	}{
		{"harpoon", config.SoundConfig{Name: "harpoon", Wave: "saw", Frequency: 880, Sweep: -440, DurationMs: 120, Volume: 0.25}},
		{"bubble", config.SoundConfig{Name: "bubble", Wave: "sine", Frequency: 440, Sweep: 660, DurationMs: 90, Volume: 0.35}},
		{"noise", config.SoundConfig{Name: "noise", Wave: "noise", Frequency: 0, DurationMs: 50, Volume: 0.5}},
		{"square", config.SoundConfig{Name: "square", Wave: "square", Frequency: 200, DurationMs: 40, Volume: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, err := NewCue(tt.sc, rate, rand.New(rand.NewSource(3)))
			if err != nil {
				t.Fatalf("NewCue: %v", err)
			}
			n, peak := drain(cue)
			want := rate.N(time.Duration(tt.sc.DurationMs) * time.Millisecond)
			if n != want {
				t.Errorf("samples = %d, want %d", n, want)
			}
			if peak > tt.sc.Volume+1e-9 {
				t.Errorf("peak = %f exceeds volume %f", peak, tt.sc.Volume)
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}
}

func TestZeroVolumeCueIsSilent(t *testing.T) {
	sc := config.SoundConfig{Name: "mute", Wave: "square", Frequency: 300, DurationMs: 20, Volume: 0}
	cue, err := NewCue(sc, beep.SampleRate(22050), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewCue: %v", err)
	}
	if _, peak := drain(cue); peak != 0 {
		t.Errorf("peak = %f, want 0", peak)
	}
}

func TestNewCueRejectsBadConfig(t *testing.T) {
	bad := []config.SoundConfig{
		{Name: "wave", Wave: "organ", Frequency: 100, DurationMs: 10, Volume: 1},
		{Name: "duration", Wave: "sine", Frequency: 100, DurationMs: 0, Volume: 1},
	}
	for _, sc := range bad {
		if _, err := NewCue(sc, beep.SampleRate(44100), rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("NewCue(%s) returned nil error", sc.Name)
		}
	}
}

func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{
		SampleRate: 44100,
		Sounds: []config.SoundConfig{
			{Name: "harpoon", Wave: "saw", Frequency: 880, DurationMs: 100, Volume: 0.2},
			{Name: "bubble", Wave: "sine", Frequency: 440, DurationMs: 100, Volume: 0.2},
		},
	}, true)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("muted Initialize: %v", err)
	}
	sm.HarpoonFired()
	sm.BallPopped()
	sm.PlaySoundByID(7)
	sm.PlaySoundByID(-1)
	sm.PlaySoundByName("missing")

	if sm.Played() != 0 {
		t.Errorf("Played = %d, want 0 while muted", sm.Played())
	}
	if !sm.Muted() {
		t.Error("Muted = false")
	}
	sm.Cleanup()
}
