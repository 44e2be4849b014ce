package minegrid

import (
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
)

// Callbacks are the host-facing lifecycle hooks. All are optional and
// fire-and-forget: the engine invokes them synchronously on the frame loop
// and never recovers panics raised inside them, so hosts must not panic.
type Callbacks struct {
	// OnCardSelected fires exactly once per accepted tap. The host must
	// eventually answer with ConfirmSafe or ConfirmBomb (exactly one).
	OnCardSelected func(row, col int)

	// OnWin fires exactly once when the last safe tile is confirmed.
	OnWin func()

	// OnGameOver fires exactly once when a bomb is confirmed.
	OnGameOver func()

	// OnChange fires after every observable state transition (tap, confirm,
	// reset, mine-count change) with a fresh snapshot.
	OnChange func(Snapshot)
}

// AssetPaths names the optional visual/audio assets inside Options.Assets.
// Any empty path disables the corresponding feature outright; a non-empty
// path that fails to load is logged and disables it too (degraded mode).
type AssetPaths struct {
	DiamondIcon    string // image for the revealed safe face
	BombIcon       string // image for the revealed bomb face
	ExplosionSheet string // frame-grid sprite sheet for the explosion overlay
	FlipSound      string // WAV played at the flip midpoint
	ExplosionSound string // WAV played when a bomb face is revealed
	WinSound       string // WAV played on win
}

// Options configures an Engine. The zero value of every field means "use the
// default" documented next to it; Create never mutates the passed value.
type Options struct {
	// Grid is the board dimension (Grid × Grid tiles). Default 5, minimum 2.
	Grid int
	// Mines is the mine count, clamped to [1, Grid²-1]. Default 3.
	Mines int
	// CanvasSize is the square render surface edge in pixels. Default 600.
	CanvasSize int

	// Title is the window title used by Run. Default "Mines".
	Title string
	// ShowFPS overlays FPS/TPS counters in the corner.
	ShowFPS bool

	// Assets is the filesystem the AssetPaths resolve against. Nil disables
	// all assets (tiles render as plain colored quads, no sound).
	Assets fs.FS
	// Paths locates individual assets within Assets.
	Paths AssetPaths
	// SheetCols and SheetRows describe the explosion sheet layout.
	// Defaults 4 × 4.
	SheetCols, SheetRows int

	// Seed seeds the engine's RNG (tilt fallback, shake phase, cascade
	// shuffle). Zero means a time-derived seed.
	Seed int64

	// Logger receives degraded-asset warnings and debug stats.
	// Default: a logrus logger at Warn level.
	Logger *logrus.Logger

	// Callbacks are the host lifecycle hooks.
	Callbacks Callbacks

	// Hover effect. Enabled by default; set HoverDisabled to opt out.
	HoverDisabled    bool
	HoverScale       float64        // extra scale factor, default 0.06
	HoverLift        float64        // vertical rise in px, default 6
	HoverSkew        float64        // skew in radians, default 0.04
	HoverSkewAxis    Axis           // which axis skews, default AxisX
	HoverInDuration  float32        // seconds, default 0.12
	HoverOutDuration float32        // seconds, default 0.18
	HoverInEase      ease.TweenFunc // default ease.OutQuad
	HoverOutEase     ease.TweenFunc // default ease.OutCubic

	// Wiggle effect (plays while awaiting the host's decision).
	WiggleDisabled bool
	WiggleDuration float32 // seconds, default 0.45
	WiggleTimes    int     // oscillation count, default 3
	WiggleSkew     float64 // skew amplitude in radians, default 0.08
	WiggleScale    float64 // scale modulation amplitude, default 0.03

	// Flip effect (cannot be disabled — it is how faces are revealed).
	FlipDuration float32        // seconds, default 0.38
	FlipEase     ease.TweenFunc // default ease.InOutQuad
	FlipLift     float64        // midpoint lift in px, default 10
	FlipPop      float64        // midpoint scale pop, default 0.08
	FlipTilt     float64        // midpoint rotation in radians, default 0.12
	// Player flip start delay interpolates from FlipMaxDelay down to
	// FlipMinDelay as safe reveals accumulate, so runs feel faster.
	FlipMinDelay float32 // seconds, default 0.02
	FlipMaxDelay float32 // seconds, default 0.18

	// Reveal-all cascade stagger (game-over bombs and leftover diamonds).
	CascadeStartDelay float32 // seconds before the first flip, default 0.1
	CascadeStepDelay  float32 // seconds between successive flips, default 0.06

	// Bomb shake effect.
	ShakeDisabled  bool
	ShakeDuration  float32 // seconds, default 0.5
	ShakeAmplitude float64 // max positional jitter in px, default 4
	ShakeDecay     float64 // exponential decay rate, default 4

	// Explosion overlay (requires ExplosionSheet to have loaded).
	ExplosionDisabled bool
	ExplosionDuration float32 // seconds, default 0.42

	// Entrance animation (board build and reset).
	EntranceDisabled  bool
	EntranceDuration  float32 // per-tile pop, default 0.3
	EntranceStepDelay float32 // stagger between tiles, default 0.02

	// PopupDuration is how long ShowWinPopup stays visible. Default 2.5 s.
	PopupDuration float32

	// Tile face colors.
	FaceDownColor Color // default dark slate
	DiamondColor  Color // default teal
	BombColor     Color // default crimson
}

// Option defaults. Exported knobs document these values; keep in sync.
const (
	defaultGrid       = 5
	defaultMines      = 3
	defaultCanvasSize = 600
)

// withDefaults returns a copy of o with every zero field replaced by its
// documented default and the mine count clamped to the legal range.
func (o Options) withDefaults() Options {
	if o.Grid == 0 {
		o.Grid = defaultGrid
	}
	if o.Mines == 0 {
		o.Mines = defaultMines
	}
	if o.CanvasSize == 0 {
		o.CanvasSize = defaultCanvasSize
	}
	if o.Title == "" {
		o.Title = "Mines"
	}
	if o.SheetCols == 0 {
		o.SheetCols = 4
	}
	if o.SheetRows == 0 {
		o.SheetRows = 4
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetLevel(logrus.WarnLevel)
	}

	if o.HoverScale == 0 {
		o.HoverScale = 0.06
	}
	if o.HoverLift == 0 {
		o.HoverLift = 6
	}
	if o.HoverSkew == 0 {
		o.HoverSkew = 0.04
	}
	if o.HoverInDuration == 0 {
		o.HoverInDuration = 0.12
	}
	if o.HoverOutDuration == 0 {
		o.HoverOutDuration = 0.18
	}
	if o.HoverInEase == nil {
		o.HoverInEase = ease.OutQuad
	}
	if o.HoverOutEase == nil {
		o.HoverOutEase = ease.OutCubic
	}

	if o.WiggleDuration == 0 {
		o.WiggleDuration = 0.45
	}
	if o.WiggleTimes == 0 {
		o.WiggleTimes = 3
	}
	if o.WiggleSkew == 0 {
		o.WiggleSkew = 0.08
	}
	if o.WiggleScale == 0 {
		o.WiggleScale = 0.03
	}

	if o.FlipDuration == 0 {
		o.FlipDuration = 0.38
	}
	if o.FlipEase == nil {
		o.FlipEase = ease.InOutQuad
	}
	if o.FlipLift == 0 {
		o.FlipLift = 10
	}
	if o.FlipPop == 0 {
		o.FlipPop = 0.08
	}
	if o.FlipTilt == 0 {
		o.FlipTilt = 0.12
	}
	if o.FlipMinDelay == 0 {
		o.FlipMinDelay = 0.02
	}
	if o.FlipMaxDelay == 0 {
		o.FlipMaxDelay = 0.18
	}

	if o.CascadeStartDelay == 0 {
		o.CascadeStartDelay = 0.1
	}
	if o.CascadeStepDelay == 0 {
		o.CascadeStepDelay = 0.06
	}

	if o.ShakeDuration == 0 {
		o.ShakeDuration = 0.5
	}
	if o.ShakeAmplitude == 0 {
		o.ShakeAmplitude = 4
	}
	if o.ShakeDecay == 0 {
		o.ShakeDecay = 4
	}

	if o.ExplosionDuration == 0 {
		o.ExplosionDuration = 0.42
	}

	if o.EntranceDuration == 0 {
		o.EntranceDuration = 0.3
	}
	if o.EntranceStepDelay == 0 {
		o.EntranceStepDelay = 0.02
	}

	if o.PopupDuration == 0 {
		o.PopupDuration = 2.5
	}

	if o.FaceDownColor == (Color{}) {
		o.FaceDownColor = Color{R: 0.16, G: 0.19, B: 0.26, A: 1}
	}
	if o.DiamondColor == (Color{}) {
		o.DiamondColor = Color{R: 0.12, G: 0.62, B: 0.53, A: 1}
	}
	if o.BombColor == (Color{}) {
		o.BombColor = Color{R: 0.78, G: 0.19, B: 0.23, A: 1}
	}

	o.Mines = clampMines(o.Mines, o.Grid)
	return o
}

// validate rejects option combinations that cannot produce a playable board.
// Called after withDefaults, so only genuinely impossible values remain.
func (o Options) validate() error {
	if o.Grid < 2 {
		return fmt.Errorf("minegrid: grid %d too small (minimum 2)", o.Grid)
	}
	if o.CanvasSize < o.Grid*4 {
		return fmt.Errorf("minegrid: canvas size %d too small for a %d×%d board", o.CanvasSize, o.Grid, o.Grid)
	}
	return nil
}

// clampMines forces n into [1, grid²-1].
func clampMines(n, grid int) int {
	max := grid*grid - 1
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
