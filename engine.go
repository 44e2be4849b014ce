package minegrid

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

// Engine is the host-facing handle. It implements [ebiten.Game]; embed it
// in your own game loop or hand it straight to [Engine.Run]. All methods
// must be called from the frame loop's goroutine — the engine is
// single-threaded and cooperative by design, so invariants are enforced
// with state guards rather than locks.
type Engine struct {
	opts   Options
	log    *logrus.Logger
	sched  *Scheduler
	game   *Game
	anim   *animator
	assets *assetBank
	sounds *soundBank
	popup  *winPopup
	rng    *rand.Rand

	hoverTile   *Tile
	prevPressed bool
	destroyed   bool
}

// Create builds an Engine from the given options. Assets and sounds are
// loaded once, here; failures are logged on opts.Logger and degrade the
// affected feature rather than aborting. The only fatal outcomes are
// option combinations that cannot produce a playable board. Render-surface
// failures surface later, as the error returned by Run (or by
// ebiten.RunGame when the host drives the loop itself).
func Create(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))

	e := &Engine{
		opts:  opts,
		log:   opts.Logger,
		sched: NewScheduler(),
		popup: &winPopup{},
		rng:   rng,
	}

	e.assets = loadAssets(e.log, opts.Assets, &e.opts)
	e.sounds = loadSounds(e.log, opts.Assets, &e.opts)

	e.anim = &animator{
		sched:           e.sched,
		opts:            &e.opts,
		rng:             rng,
		sounds:          e.sounds,
		explosionFrames: len(e.assets.explosion),
	}

	board := newBoard(opts.Grid, opts.Mines, float64(opts.CanvasSize))
	e.game = newGame(board, e.anim, rng, opts.Callbacks)
	return e, nil
}

// Run opens a window sized to the canvas and drives the engine until the
// window closes or Destroy is called. The returned error is fatal-class:
// render surface or run loop initialization failure.
func (e *Engine) Run() error {
	ebiten.SetWindowSize(e.opts.CanvasSize, e.opts.CanvasSize)
	ebiten.SetWindowTitle(e.opts.Title)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run engine: %w", err)
	}
	return nil
}

// Update implements ebiten.Game: input, then one scheduler step.
func (e *Engine) Update() error {
	if e.destroyed {
		return ebiten.Termination
	}

	e.processInput()

	dt := float32(1.0 / float64(ebiten.TPS()))
	e.sched.Update(dt)
	e.popup.update(dt)
	return nil
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.draw(screen)
}

// Layout implements ebiten.Game: the logical canvas is a fixed square
// regardless of the outside window size.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.opts.CanvasSize, e.opts.CanvasSize
}

// processInput tracks hover from the cursor and turns presses (mouse or
// touch) into taps. Hit testing runs against tile base rects, so an
// animating tile keeps a stable target.
func (e *Engine) processInput() {
	cx, cy := ebiten.CursorPosition()
	e.trackHover(float64(cx), float64(cy))

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed && !e.prevPressed {
		e.press(float64(cx), float64(cy))
	}
	e.prevPressed = pressed

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		e.press(float64(tx), float64(ty))
	}
}

func (e *Engine) trackHover(x, y float64) {
	t := e.game.board.tileAtPoint(x, y)
	if t == e.hoverTile {
		return
	}
	if e.hoverTile != nil {
		e.anim.hoverOut(e.hoverTile)
	}
	if t != nil {
		e.anim.hoverIn(t)
	}
	e.hoverTile = t
}

// press hit-tests a pointer press and forwards it as a tap. The tilt
// direction is which half of the tile was touched, so the flip leans
// toward the finger.
func (e *Engine) press(x, y float64) {
	t := e.game.board.tileAtPoint(x, y)
	if t == nil {
		return
	}
	tilt := x - (t.X + t.Size/2)
	if tilt == 0 {
		tilt = float64(e.rng.IntN(2)*2 - 1)
	}
	e.game.tap(t, tilt)
}

// Reset clears the selection and game over, rebuilds the board, and
// replays the entrance animation. Valid at any time.
func (e *Engine) Reset() {
	e.popup.hide()
	e.hoverTile = nil
	e.game.reset()
}

// SetMineCount clamps n to [1, Grid²-1] and resets the board.
func (e *Engine) SetMineCount(n int) {
	e.popup.hide()
	e.hoverTile = nil
	e.game.setMineCount(n)
}

// ConfirmSafe resolves the pending selection as safe. Returns false (and
// changes nothing) when no selection is pending — which also makes a
// second confirm for the same selection a no-op.
func (e *Engine) ConfirmSafe() bool { return e.game.confirmSafe() }

// ConfirmBomb resolves the pending selection as a mine. Game over latches
// synchronously, before any animation plays.
func (e *Engine) ConfirmBomb() bool { return e.game.confirmBomb() }

// State returns a snapshot of the current game state.
func (e *Engine) State() Snapshot { return e.game.snapshot() }

// Resize rebuilds the board at a new square canvas size, carrying revealed
// faces (and a pending selection) over. In-flight animations are dropped.
func (e *Engine) Resize(size int) {
	if size <= 0 {
		return
	}
	e.opts.CanvasSize = size
	e.hoverTile = nil
	e.game.resize(float64(size))
}

// ShowWinPopup displays the cosmetic win overlay. Typically called from
// OnWin with a multiplier computed by [Multiplier].
func (e *Engine) ShowWinPopup(multiplier, amount float64) {
	e.popup.show(multiplier, amount, e.opts.PopupDuration)
}

// Destroy stops the engine: the next Update returns ebiten.Termination,
// which ends Run cleanly. Idempotent.
func (e *Engine) Destroy() {
	e.destroyed = true
}
