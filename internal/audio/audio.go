// Package audio provides sound cue sinks for hosts without a synthesizer and
// for tests. Every sink returns immediately.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Cue names a sound event.
type Cue string

const (
	CuePositive   Cue = "positive"
	CueNegative   Cue = "negative"
	CueClick      Cue = "click"
	CueAmbientOn  Cue = "ambient-on"
	CueAmbientOff Cue = "ambient-off"
)

// Nop discards every cue.
type Nop struct{}

func (Nop) PlayPositive()   {}
func (Nop) PlayNegative()   {}
func (Nop) PlayClick()      {}
func (Nop) SetAmbient(bool) {}

// Sink is the set of cues a host can play.
type Sink interface {
	PlayPositive()
	PlayNegative()
	PlayClick()
	SetAmbient(enabled bool)
}

// Multi fans cues out to several sinks in order.
type Multi []Sink

func (m Multi) PlayPositive() {
	for _, s := range m {
		s.PlayPositive()
	}
}

func (m Multi) PlayNegative() {
	for _, s := range m {
		s.PlayNegative()
	}
}

func (m Multi) PlayClick() {
	for _, s := range m {
		s.PlayClick()
	}
}

func (m Multi) SetAmbient(enabled bool) {
	for _, s := range m {
		s.SetAmbient(enabled)
	}
}

// Log writes each cue as a debug line.
type Log struct {
	Logger *log.Logger
}

func (l Log) PlayPositive() { l.Logger.Debug("cue", "sound", CuePositive) }
func (l Log) PlayNegative() { l.Logger.Debug("cue", "sound", CueNegative) }
func (l Log) PlayClick()    { l.Logger.Debug("cue", "sound", CueClick) }

func (l Log) SetAmbient(enabled bool) {
	if enabled {
		l.Logger.Debug("cue", "sound", CueAmbientOn)
		return
	}
	l.Logger.Debug("cue", "sound", CueAmbientOff)
}

// Bell rings the terminal bell on negative cues. Writes happen on a background
// goroutine; a ring requested while one is pending is dropped, and so is any
// ring after Close.
type Bell struct {
	rings chan struct{}
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewBell starts a bell writing to w.
func NewBell(w io.Writer) *Bell {
	b := &Bell{
		rings: make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go b.run(w)
	return b
}

func (b *Bell) run(w io.Writer) {
	defer close(b.done)
	for {
		select {
		case <-b.rings:
			_, _ = io.WriteString(w, "\a")
		case <-b.stop:
			// Flush a ring queued just before Close
			select {
			case <-b.rings:
				_, _ = io.WriteString(w, "\a")
			default:
			}
			return
		}
	}
}

// ring queues a BEL. rings is never closed, so a cue racing Close lands in
// the buffer or is dropped.
func (b *Bell) ring() {
	select {
	case <-b.stop:
		return
	default:
	}
	select {
	case b.rings <- struct{}{}:
	default:
	}
}

// PlayPositive is silent.
func (b *Bell) PlayPositive() {}

// PlayNegative rings the bell.
func (b *Bell) PlayNegative() { b.ring() }

// PlayClick is silent.
func (b *Bell) PlayClick() {}

// SetAmbient is ignored; a terminal has no background loop.
func (b *Bell) SetAmbient(bool) {}

// Close stops the writer after a pending ring is flushed. It is safe to call
// more than once, and cues sent afterwards are dropped.
func (b *Bell) Close() {
	b.once.Do(func() {
		close(b.stop)
		<-b.done
	})
}

// Recorder keeps every cue in order. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) add(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// PlayPositive records CuePositive.
func (r *Recorder) PlayPositive() { r.add(CuePositive) }

// PlayNegative records CueNegative.
func (r *Recorder) PlayNegative() { r.add(CueNegative) }

// PlayClick records CueClick.
func (r *Recorder) PlayClick() { r.add(CueClick) }

// SetAmbient records CueAmbientOn or CueAmbientOff.
func (r *Recorder) SetAmbient(enabled bool) {
	if enabled {
		r.add(CueAmbientOn)
		return
	}
	r.add(CueAmbientOff)
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was recorded.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = r.cues[:0]
	r.mu.Unlock()
}
