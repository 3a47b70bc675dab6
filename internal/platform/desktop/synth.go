package desktop

import (
	"bytes"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// SampleRate of every generated clip.
const SampleRate = 44100

const (
	sfxVolume   = 0.5
	musicVolume = 0.3
	tempo       = 110.0
)

// ambientNotes is the looping bass line: A minor into E, two bars of eighths.
var ambientNotes = []float64{
	110.00, 220.00, 130.81, 164.81, 196.00, 164.81, 130.81, 123.47,
	103.83, 207.65, 123.47, 164.81, 174.61, 164.81, 123.47, 207.65,
}

// chordNotes is the C major 7 arpeggio played on a pickup.
var chordNotes = []float64{523.25, 659.25, 783.99, 987.77, 1046.50}

// clip is mono PCM in [-1, 1].
type clip []float64

func newClip(seconds float64) clip {
	return make(clip, int(seconds*SampleRate))
}

// expRamp moves from a to b exponentially over [0, d] and holds b afterwards.
func expRamp(a, b, t, d float64) float64 {
	if t >= d {
		return b
	}
	return a * math.Pow(b/a, t/d)
}

func linRamp(a, b, t, d float64) float64 {
	if t >= d {
		return b
	}
	return a + (b-a)*t/d
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4*math.Abs(p-0.5) - 1
}

func saw(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 2*p - 1
}

func square(phase float64) float64 {
	if phase-math.Floor(phase) < 0.5 {
		return 1
	}
	return -1
}

// ClickClip is a 50 ms sine chirp falling from 800 to 100 Hz.
func ClickClip() []float64 {
	const d = 0.05
	c := newClip(d)
	phase := 0.0
	for i := range c {
		t := float64(i) / SampleRate
		phase += expRamp(800, 100, t, d) / SampleRate
		c[i] = math.Sin(2*math.Pi*phase) * expRamp(sfxVolume*0.5, 0.01, t, d)
	}
	return c
}

// PositiveClip stacks a triangle C major 7 chord whose voices swell in one
// after another and ring out over a second and a half.
func PositiveClip() []float64 {
	const d = 1.6
	c := newClip(d)
	for n, freq := range chordNotes {
		attack := 0.05 + float64(n)*0.05
		for i := range c {
			t := float64(i) / SampleRate
			var g float64
			if t < attack {
				g = linRamp(0, 0.1, t, attack)
			} else {
				g = expRamp(0.1, 0.001, t-attack, 1.5-attack)
			}
			c[i] += triangle(freq*t) * g * sfxVolume
		}
	}
	return c
}

// NegativeClip is a detuned saw and square pair sliding down for half a second.
func NegativeClip() []float64 {
	const d = 0.5
	c := newClip(d)
	p1, p2 := 0.0, 0.0
	for i := range c {
		t := float64(i) / SampleRate
		p1 += linRamp(100, 60, t, d) / SampleRate
		p2 += linRamp(106, 64, t, d) / SampleRate
		g := expRamp(sfxVolume*0.4, 0.01, t, d)
		c[i] = (saw(p1) + square(p2)) * 0.5 * g
	}
	return c
}

// AmbientClip renders one pass of the bass line through a closing low-pass
// filter. It loops seamlessly.
func AmbientClip() []float64 {
	noteLen := 0.5 * 60 / tempo // two sixteenths
	decay := (60 / tempo) * 0.5
	per := int(noteLen * SampleRate)
	c := make(clip, per*len(ambientNotes))

	for n, freq := range ambientNotes {
		lp := 0.0
		for j := 0; j < per; j++ {
			t := float64(j) / SampleRate
			cutoff := expRamp(400, 100, t, 0.4)
			alpha := 1 - math.Exp(-2*math.Pi*cutoff/SampleRate)
			lp += alpha * (saw(freq*t) - lp)

			var g float64
			if t < 0.02 {
				g = linRamp(0, musicVolume*0.3, t, 0.02)
			} else {
				g = expRamp(musicVolume*0.3, 0.001, t-0.02, decay-0.02)
			}
			c[n*per+j] = lp * g
		}
	}
	return c
}

// EncodePCM converts mono samples to 16-bit little-endian stereo, clipping
// anything outside [-1, 1].
func EncodePCM(samples []float64) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		s = core.ClampF(s, -1, 1)
		v := int16(s * math.MaxInt16)
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}

// Synth plays the runner's cues through ebiten's audio context. Every clip is
// rendered once up front; playing a cue only starts a new player.
type Synth struct {
	ctx      *audio.Context
	click    []byte
	positive []byte
	negative []byte

	mu      sync.Mutex
	ambient *audio.Player
}

// NewSynth renders the clips and prepares the ambient loop. Only one audio
// context may exist per process.
func NewSynth() (*Synth, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}

	s := &Synth{
		ctx:      ctx,
		click:    EncodePCM(ClickClip()),
		positive: EncodePCM(PositiveClip()),
		negative: EncodePCM(NegativeClip()),
	}

	bass := EncodePCM(AmbientClip())
	loop := audio.NewInfiniteLoop(bytes.NewReader(bass), int64(len(bass)))
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	s.ambient = player
	return s, nil
}

func (s *Synth) play(pcm []byte) {
	s.ctx.NewPlayerFromBytes(pcm).Play()
}

// PlayPositive plays the pickup chord.
func (s *Synth) PlayPositive() { s.play(s.positive) }

// PlayNegative plays the hit slide.
func (s *Synth) PlayNegative() { s.play(s.negative) }

// PlayClick plays the lane-change chirp.
func (s *Synth) PlayClick() { s.play(s.click) }

// SetAmbient starts the bass loop from the top or pauses it.
func (s *Synth) SetAmbient(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		if !s.ambient.IsPlaying() {
			_ = s.ambient.Rewind()
			s.ambient.Play()
		}
		return
	}
	s.ambient.Pause()
}

// Close stops the ambient loop.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient.Close()
}
