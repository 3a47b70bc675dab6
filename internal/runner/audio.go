package runner

// Notifier receives fire-and-forget sound cues. Implementations must return
// immediately.
type Notifier interface {
	PlayPositive()
	PlayNegative()
	PlayClick()
	SetAmbient(enabled bool)
}

type nopNotifier struct{}

func (nopNotifier) PlayPositive()   {}
func (nopNotifier) PlayNegative()   {}
func (nopNotifier) PlayClick()      {}
func (nopNotifier) SetAmbient(bool) {}
