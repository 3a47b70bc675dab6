package audio

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRecorderOrder(t *testing.T) {
	var r Recorder
	r.SetAmbient(true)
	r.PlayPositive()
	r.PlayClick()
	r.PlayNegative()
	r.SetAmbient(false)

	want := []Cue{CueAmbientOn, CuePositive, CueClick, CueNegative, CueAmbientOff}
	got := r.Cues()
	if len(got) != len(want) {
		t.Fatalf("Cues() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cue %d = %s, expected %s", i, got[i], want[i])
		}
	}
	if r.Count(CueClick) != 1 {
		t.Errorf("Count(click) = %d, expected 1", r.Count(CueClick))
	}

	r.Reset()
	if len(r.Cues()) != 0 {
		t.Error("Reset should clear cues")
	}
}

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, Nop{}, &b}
	m.PlayNegative()
	m.SetAmbient(true)

	for _, r := range []*Recorder{&a, &b} {
		if r.Count(CueNegative) != 1 || r.Count(CueAmbientOn) != 1 {
			t.Errorf("sink missed cues: %v", r.Cues())
		}
	}
}

func TestBellRingsOnNegative(t *testing.T) {
	var out syncBuffer
	b := NewBell(&out)
	b.PlayPositive()
	b.PlayClick()
	b.PlayNegative()
	b.Close()

	if got := out.String(); got != "\a" {
		t.Errorf("bell wrote %q, expected a single BEL", got)
	}

	// Close is idempotent
	b.Close()
}

func TestBellAfterClose(t *testing.T) {
	var out syncBuffer
	b := NewBell(&out)
	b.Close()

	// A session can still deliver a queued frame after it ends
	b.PlayNegative()
	b.PlayNegative()

	if got := out.String(); got != "" {
		t.Errorf("closed bell wrote %q", got)
	}
}

func TestBellCloseWhileRinging(t *testing.T) {
	var out syncBuffer
	b := NewBell(&out)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.PlayNegative()
		}
	}()
	b.Close()
	wg.Wait()

	for _, r := range out.String() {
		if r != '\a' {
			t.Fatalf("bell wrote %q", out.String())
		}
	}
}

func TestLogWritesCues(t *testing.T) {
	var out bytes.Buffer
	logger := log.NewWithOptions(&out, log.Options{Level: log.DebugLevel})
	l := Log{Logger: logger}
	l.PlayClick()
	l.SetAmbient(false)

	s := out.String()
	if !strings.Contains(s, "click") || !strings.Contains(s, "ambient-off") {
		t.Errorf("log output missing cues: %q", s)
	}
}
