package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/runner"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// Default window size in device-independent pixels.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// HUD colours.
var (
	hudScore  = color.RGBA{34, 211, 238, 255}
	hudLevel  = color.RGBA{226, 232, 240, 255}
	hudHeart  = color.RGBA{244, 63, 94, 255}
	hudEmpty  = color.RGBA{71, 85, 105, 255}
	hudSpeed  = color.RGBA{232, 121, 249, 255}
	hudShade  = color.RGBA{2, 6, 23, 200}
	hudTitle  = color.RGBA{56, 189, 248, 255}
	hudDanger = color.RGBA{244, 63, 94, 255}
)

// Options configures an App.
type Options struct {
	Store  *storage.Store   // nil disables the leaderboard
	Logger *log.Logger      // nil discards
	Sound  runner.Notifier  // nil is silent
	Now    func() time.Time // Clock, time.Now when nil
}

// App implements ebiten.Game around a runner game. Input becomes actions for
// Game.Step and the controller paints straight onto the window.
type App struct {
	game    *runner.Game
	runtime core.RuntimeConfig
	store   *storage.Store
	logger  *log.Logger
	clock   func() time.Time

	face    text.Face
	surface *Surface
	frame   core.InputFrame
	state   core.GameState
	start   time.Time
	now     float64
	saved   bool
	width   int
	height  int
}

// NewApp resets game for a fresh session and wraps it.
func NewApp(game *runner.Game, rt core.RuntimeConfig, opts Options) *App {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	game.SetLogger(logger)
	if opts.Sound != nil {
		game.SetNotifier(opts.Sound)
	}
	game.Reset(rt)

	return &App{
		game:    game,
		runtime: rt,
		store:   opts.Store,
		logger:  logger,
		clock:   clock,
		face:    text.NewGoXFace(bitmapfont.Face),
		frame:   core.NewInputFrame(),
		state:   game.State(),
		start:   clock(),
		width:   WindowWidth,
		height:  WindowHeight,
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	a.readInput()
	return a.step()
}

// readInput turns this tick's key presses, clicks and touches into actions.
func (a *App) readInput() {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	if pressed(ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH) {
		a.frame.Set(core.ActionLeft)
	}
	if pressed(ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL) {
		a.frame.Set(core.ActionRight)
	}
	if pressed(ebiten.KeyEnter, ebiten.KeySpace) {
		a.frame.Set(core.ActionStart)
	}
	if pressed(ebiten.KeyR) {
		a.frame.Set(core.ActionRestart)
	}
	if pressed(ebiten.KeyEscape, ebiten.KeyB) {
		a.frame.Set(core.ActionBack)
	}
	if pressed(ebiten.KeyQ) {
		a.frame.Set(core.ActionQuit)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		a.pointer(x)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		a.pointer(x)
	}
}

// pointer handles a press at screen column x.
func (a *App) pointer(x int) {
	a.frame.Set(PointerAction(x, a.width, a.state.Started && !a.state.GameOver))
}

// PointerAction maps a press at x on a surface width pixels wide: the left
// half steers left and the right half steers right. Without a run in
// progress any press starts one.
func PointerAction(x, width int, running bool) core.Action {
	if !running {
		return core.ActionStart
	}
	if x < width/2 {
		return core.ActionLeft
	}
	return core.ActionRight
}

// step advances the game with the collected actions. It returns
// ebiten.Termination once the player has left.
func (a *App) step() error {
	if now := float64(a.clock().Sub(a.start)) / float64(time.Millisecond); now > a.now {
		a.now = now
	}

	a.state = a.game.Step(a.frame, a.now).State
	a.frame.Clear()

	if !a.state.GameOver {
		a.saved = false
	} else if !a.saved {
		a.saveRun()
		a.saved = true
	}

	if a.state.Exited {
		return ebiten.Termination
	}
	return nil
}

func (a *App) saveRun() {
	if a.store == nil {
		return
	}
	run := storage.Run{
		GameID:   a.game.ID(),
		Player:   a.runtime.Player,
		Score:    a.state.Score,
		Level:    a.state.Level,
		Distance: a.state.Distance,
	}
	if _, err := a.store.RecordRun(run, storage.DefaultKeep); err != nil {
		a.logger.Error("could not save run", "err", err)
		return
	}
	a.logger.Info("run saved", "player", run.Player, "score", run.Score)
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	if a.surface == nil {
		a.surface = NewSurface(screen)
	}
	a.surface.Reset(screen)

	ctrl := a.game.Controller()
	ctrl.Draw(a.surface, a.now)
	a.drawHUD(screen, ctrl)

	switch ctrl.State() {
	case runner.NotStarted:
		a.drawOverlay(screen, hudTitle, "NEON RUNNER", []string{
			"ENTER or tap to initialize run",
			"ARROWS / A D / tap a side to switch lanes",
			"ESC to exit",
		})
	case runner.Terminated:
		a.drawOverlay(screen, hudDanger, "SYSTEM FAILURE", []string{
			fmt.Sprintf("SCORE: %d", ctrl.Stats().Score),
			"",
			"R or tap to reboot system",
			"ESC to exit",
		})
	}
}

func (a *App) drawHUD(screen *ebiten.Image, ctrl *runner.Controller) {
	stats := ctrl.Stats()
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	a.drawText(screen, fmt.Sprintf("%06d", stats.Score), 24, 20, 3, hudScore, text.AlignStart)
	a.drawText(screen, fmt.Sprintf("LEVEL %d", stats.Level), w/2, 20, 2, hudLevel, text.AlignCenter)

	lives := ctrl.Config().Rules.Lives
	for i := 0; i < lives; i++ {
		c := hudEmpty
		if i < stats.Lives {
			c = hudHeart
		}
		x := w - 24 - float64(lives-i)*36
		a.drawText(screen, string(runner.HeartChar), x, 20, 2, c, text.AlignStart)
	}

	a.drawText(screen, fmt.Sprintf("SPEED %d%%", stats.SpeedPercent), w-24, h-48, 2, hudSpeed, text.AlignEnd)
}

func (a *App) drawOverlay(screen *ebiten.Image, accent color.RGBA, title string, lines []string) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, w, h, hudShade, false)

	cx, cy := float64(w)/2, float64(h)/2
	a.drawText(screen, title, cx, cy-120, 5, accent, text.AlignCenter)
	for i, l := range lines {
		a.drawText(screen, l, cx, cy+float64(i)*32, 2, hudLevel, text.AlignCenter)
	}
}

func (a *App) drawText(dst *ebiten.Image, s string, x, y, scale float64, c color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(dst, s, a.face, op)
}

// Layout implements ebiten.Game. The scene fills the whole window at its
// current size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// State returns the last game state.
func (a *App) State() core.GameState {
	return a.state
}

// Run opens a resizable window and blocks until the player leaves.
func Run(game *runner.Game, rt core.RuntimeConfig, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sound == nil {
		synth, err := NewSynth()
		if err != nil {
			opts.Logger.Warn("audio unavailable", "err", err)
		} else {
			defer synth.Close()
			opts.Sound = synth
		}
	}

	app := NewApp(game, rt, opts)

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if rt.TickRate > 0 {
		ebiten.SetTPS(rt.TickRate)
	}

	return ebiten.RunGame(app)
}
