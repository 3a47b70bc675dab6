package desktop

import (
	"math"
	"testing"
)

func peak(c []float64) float64 {
	m := 0.0
	for _, s := range c {
		m = math.Max(m, math.Abs(s))
	}
	return m
}

func TestClips(t *testing.T) {
	beat := 60 / tempo
	tests := []struct {
		name    string
		clip    []float64
		seconds float64
	}{
		{"click", ClickClip(), 0.05},
		{"positive", PositiveClip(), 1.6},
		{"negative", NegativeClip(), 0.5},
		{"ambient", AmbientClip(), float64(len(ambientNotes)) * beat / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := int(tc.seconds * SampleRate)
			if d := len(tc.clip) - want; d < -len(ambientNotes) || d > len(ambientNotes) {
				t.Errorf("len = %d samples, expected about %d", len(tc.clip), want)
			}
			p := peak(tc.clip)
			if p == 0 {
				t.Error("clip is silent")
			}
			if p > 1 {
				t.Errorf("clip peaks at %v, beyond full scale", p)
			}
			for i, s := range tc.clip {
				if math.IsNaN(s) {
					t.Fatalf("NaN at sample %d", i)
				}
			}
		})
	}
}

func TestClickFadesOut(t *testing.T) {
	c := ClickClip()
	head := peak(c[:len(c)/4])
	tail := peak(c[len(c)*3/4:])
	if tail >= head {
		t.Errorf("click should decay: head %v, tail %v", head, tail)
	}
}

func TestEncodePCM(t *testing.T) {
	buf := EncodePCM([]float64{0, 1, -1, 2})
	if len(buf) != 16 {
		t.Fatalf("len = %d, expected 4 stereo frames of 4 bytes", len(buf))
	}

	sample := func(i, ch int) int16 {
		idx := i*4 + ch*2
		return int16(uint16(buf[idx]) | uint16(buf[idx+1])<<8)
	}
	tests := []struct {
		frame int
		want  int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{2, -math.MaxInt16},
		{3, math.MaxInt16}, // clipped
	}
	for _, tc := range tests {
		for ch := 0; ch < 2; ch++ {
			if got := sample(tc.frame, ch); got != tc.want {
				t.Errorf("frame %d channel %d = %d, expected %d", tc.frame, ch, got, tc.want)
			}
		}
	}
}
