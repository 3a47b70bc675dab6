package runner

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/gfx"
)

// RunState is the lifecycle of a run.
type RunState int

const (
	NotStarted RunState = iota
	Running
	Terminated
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Direction is a lane change request.
type Direction int

const (
	Left Direction = iota
	Right
)

// Options configures a Controller.
type Options struct {
	Seed     int64       // RNG seed for spawns
	Notifier Notifier    // Sound cues, nil for silence
	Logger   *log.Logger // nil discards
	OnExit   func()      // Called once when the player leaves
}

// Controller owns a run: it turns input into intent, drives the simulator
// while running and asks the renderer for frames.
//
// A Controller is not safe for concurrent use. Hosts call it from their single
// frame loop, which is also where input is delivered.
type Controller struct {
	cfg      config.RunnerConfig
	sim      *Simulator
	renderer *Renderer
	notify   Notifier
	logger   *log.Logger
	onExit   func()

	state   RunState
	world   *World
	stats   RunStats
	stopped bool
}

// NewController creates a controller waiting for Start.
func NewController(cfg config.RunnerConfig, opts Options) *Controller {
	c := &Controller{
		cfg:      cfg,
		sim:      NewSimulator(cfg, opts.Seed),
		renderer: NewRenderer(cfg),
		onExit:   opts.OnExit,
		world:    NewWorld(cfg),
		stats:    NewRunStats(cfg),
	}
	c.SetNotifier(opts.Notifier)
	c.logger = opts.Logger
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// SetNotifier replaces the sound sink. nil silences the controller.
func (c *Controller) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	c.notify = n
}

// Start begins a fresh run, discarding any previous world and counters.
func (c *Controller) Start() {
	if c.stopped {
		return
	}
	c.world = NewWorld(c.cfg)
	c.stats = NewRunStats(c.cfg)
	c.state = Running
	c.notify.PlayPositive()
	c.notify.SetAmbient(true)
	c.logger.Info("run started", "lives", c.stats.Lives, "speed", c.world.Speed)
}

// ChangeLane moves the target lane one step, clamped to the track. It returns
// false when nothing changed, including when no run is active.
func (c *Controller) ChangeLane(dir Direction) bool {
	if c.state != Running {
		return false
	}
	lane := c.world.PlayerLane
	switch dir {
	case Left:
		lane--
	case Right:
		lane++
	}
	lane = core.Clamp(lane, 0, c.cfg.Track.Lanes-1)
	if lane == c.world.PlayerLane {
		return false
	}
	c.world.PlayerLane = lane
	c.world.TargetRotation = LaneTilt(c.cfg, lane)
	c.notify.PlayClick()
	return true
}

// Advance runs one simulation step at ts (milliseconds) if a run is active.
func (c *Controller) Advance(ts float64) Events {
	if c.stopped || c.state != Running {
		return Events{}
	}
	ev := c.sim.Step(c.world, &c.stats, ts)

	if ev.LevelUp {
		c.logger.Debug("level up", "level", c.stats.Level, "speed", c.world.Speed)
	}
	for i := 0; i < ev.Pickups; i++ {
		c.notify.PlayPositive()
	}
	if ev.Terminated {
		c.state = Terminated
		c.notify.PlayNegative()
		c.notify.SetAmbient(false)
		c.logger.Info("run ended", "score", c.stats.Score, "level", c.stats.Level, "distance", c.world.Distance)
	} else if ev.Hits > 0 {
		c.notify.PlayNegative()
	}
	return ev
}

// Draw paints the current frame. It never changes the run.
func (c *Controller) Draw(dst gfx.Surface, ts float64) {
	if dst == nil {
		return
	}
	c.renderer.Draw(dst, Frame{
		World:         c.world,
		Timestamp:     ts,
		PlayerVisible: c.state != Terminated,
	})
}

// Tick is one animation frame: step while running, then always draw so the
// final frame stays visible under the end overlay.
func (c *Controller) Tick(ts float64, dst gfx.Surface) Events {
	if c.stopped {
		return Events{}
	}
	ev := c.Advance(ts)
	c.Draw(dst, ts)
	return ev
}

// Stop ends the frame loop. Further calls are ignored.
func (c *Controller) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.notify.SetAmbient(false)
}

// Exit stops the loop and hands control back to the host.
func (c *Controller) Exit() {
	if c.stopped {
		return
	}
	c.Stop()
	if c.onExit != nil {
		c.onExit()
	}
}

// Stopped reports whether Stop or Exit was called.
func (c *Controller) Stopped() bool { return c.stopped }

// State returns the lifecycle state.
func (c *Controller) State() RunState { return c.state }

// Stats returns the HUD counters.
func (c *Controller) Stats() RunStats { return c.stats }

// World returns the live world. Callers must treat it as read-only.
func (c *Controller) World() *World { return c.world }

// Config returns the tuning in use.
func (c *Controller) Config() config.RunnerConfig { return c.cfg }
