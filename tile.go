package minegrid

// TileState is the per-tile lifecycle. A single enum with one mutation entry
// point (setState) replaces the loose revealed/animating/pressed booleans
// that tend to drift apart once several closures write to the same tile.
type TileState uint8

const (
	TileIdle     TileState = iota // face down, no interaction in flight
	TileHovering                  // pointer over the tile, hover tween active
	TileWaiting                   // tapped; wiggling until the host answers
	TileFlipping                  // flip scheduled or running
	TileRevealed                  // terminal; face is final
)

// String implements fmt.Stringer for log lines and test failure messages.
func (s TileState) String() string {
	switch s {
	case TileIdle:
		return "idle"
	case TileHovering:
		return "hovering"
	case TileWaiting:
		return "waiting"
	case TileFlipping:
		return "flipping"
	case TileRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Face is what a tile shows.
type Face uint8

const (
	FaceDown    Face = iota // unrevealed back side
	FaceDiamond             // revealed safe
	FaceBomb                // revealed mine
)

// Tile is one grid cell: the unit of animation and reveal. Tiles are owned
// exclusively by their Board, created on (re)build and discarded wholesale
// on rebuild. Render-facing fields are plain floats the draw pass reads each
// frame; effects mutate them through epoch-guarded tween closures.
type Tile struct {
	Row, Col int

	// Base geometry set at layout time. X, Y is the top-left corner.
	X, Y, Size float64

	// Face flips from FaceDown exactly once, at the flip midpoint.
	Face Face

	// flipFace is the face a committed flip will land on, recorded when the
	// flip is scheduled so a board rebuild can finish the reveal.
	flipFace Face

	// TiltDir is -1 or +1, captured at selection time so the flip leans the
	// same way the player touched the tile.
	TiltDir float64

	// Visual transform, all relative to the tile center.
	ScaleX, ScaleY   float64 // 1 = natural size
	SkewX, SkewY     float64 // radians
	Rotation         float64 // radians
	Lift             float64 // upward rise in px
	OffsetX, OffsetY float64 // shake jitter in px
	WidthFactor      float64 // flip width collapse, 1 = full width

	// Explosion overlay playback; -1 when inactive.
	ExplosionFrame int

	state   TileState
	epoch   uint64
	shaking bool
}

func newTile(row, col int, x, y, size float64) *Tile {
	return &Tile{
		Row: row, Col: col,
		X: x, Y: y, Size: size,
		TiltDir:        1,
		ScaleX:         1,
		ScaleY:         1,
		WidthFactor:    1,
		ExplosionFrame: -1,
	}
}

// State returns the current lifecycle state.
func (t *Tile) State() TileState { return t.state }

// setState is the single mutation entry point for the lifecycle enum.
// TileRevealed is terminal: once set, only a board rebuild replaces it.
func (t *Tile) setState(s TileState) {
	if t.state == TileRevealed {
		return
	}
	t.state = s
}

// Revealed reports whether the tile's face is final.
func (t *Tile) Revealed() bool { return t.state == TileRevealed }

// selectable reports whether a tap may land on this tile.
func (t *Tile) selectable() bool {
	return t.state == TileIdle || t.state == TileHovering
}

// bumpEpoch invalidates every tween currently targeting this tile and
// returns the fresh epoch for the superseding effect to capture. Stale
// tweens keep running on the scheduler but their writes (and completion
// handlers) become no-ops once their captured epoch stops matching.
func (t *Tile) bumpEpoch() uint64 {
	t.epoch++
	return t.epoch
}

// epochIs reports whether e is still the live epoch. Effects check this
// before every write and again inside completion handlers, so a stale
// completion can never overwrite a newer animation's terminal values.
func (t *Tile) epochIs(e uint64) bool { return t.epoch == e }

// resetVisual restores the neutral transform, leaving state and face alone.
func (t *Tile) resetVisual() {
	t.ScaleX, t.ScaleY = 1, 1
	t.SkewX, t.SkewY = 0, 0
	t.Rotation = 0
	t.Lift = 0
	t.OffsetX, t.OffsetY = 0, 0
	t.WidthFactor = 1
}

// hitRect is the tile's pointer target at its base position. Animated
// transforms deliberately do not move the hit area.
func (t *Tile) hitRect() Rect {
	return Rect{X: t.X, Y: t.Y, Width: t.Size, Height: t.Size}
}
