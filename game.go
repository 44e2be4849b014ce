package minegrid

import "math/rand/v2"

// Phase is the board-wide state machine: Idle accepts taps, Waiting blocks
// everything until the host answers, Won/Lost are terminal until Reset.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseWon
	PhaseLost
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// CellRef identifies a tile by grid position.
type CellRef struct {
	Row, Col int
}

// Snapshot is the host-visible game state, returned by Engine.State and
// passed to OnChange. Selected is nil unless a choice is pending.
type Snapshot struct {
	Grid             int
	Mines            int
	RevealedSafe     int
	TotalSafe        int
	GameOver         bool
	WaitingForChoice bool
	Selected         *CellRef
}

// Game is the core orchestrator: it owns the phase, mediates the
// selection-confirmation handshake with the host, and enforces the
// invariants that the cooperative scheduler cannot (no double reveal, no
// tap while waiting, game over latched synchronously). All methods run on
// the frame loop; there is no locking because there is no second thread.
type Game struct {
	board *Board
	anim  *animator
	rng   *rand.Rand
	cbs   Callbacks

	phase    Phase
	selected *Tile
}

func newGame(board *Board, anim *animator, rng *rand.Rand, cbs Callbacks) *Game {
	g := &Game{board: board, anim: anim, rng: rng, cbs: cbs}
	g.anim.entrance(g.board.tiles)
	return g
}

// snapshot builds the host-visible view of the current state.
func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		Grid:             g.board.Grid,
		Mines:            g.board.Mines,
		RevealedSafe:     g.board.revealedSafe,
		TotalSafe:        g.board.totalSafe(),
		GameOver:         g.board.gameOver,
		WaitingForChoice: g.phase == PhaseWaiting,
	}
	if g.selected != nil {
		s.Selected = &CellRef{Row: g.selected.Row, Col: g.selected.Col}
	}
	return s
}

func (g *Game) changed() {
	if g.cbs.OnChange != nil {
		g.cbs.OnChange(g.snapshot())
	}
}

// tap attempts to select a tile. Rejected (returning false, no state
// change) when the game is over, another selection is pending, the tile is
// revealed or mid-animation, or only mines remain unrevealed. On success
// the tile wiggles, the phase moves to Waiting, and OnCardSelected fires
// exactly once; the engine then sits until the host answers.
func (g *Game) tap(t *Tile, tiltDir float64) bool {
	if t == nil || g.phase != PhaseIdle || g.board.gameOver {
		return false
	}
	if !t.selectable() {
		return false
	}
	// Refuse the pick that could only hit a mine.
	if g.board.unrevealedCount() <= g.board.Mines {
		return false
	}

	if tiltDir >= 0 {
		t.TiltDir = 1
	} else {
		t.TiltDir = -1
	}

	g.phase = PhaseWaiting
	g.selected = t
	t.setState(TileWaiting)
	g.anim.wiggle(t)
	g.changed()

	if g.cbs.OnCardSelected != nil {
		g.cbs.OnCardSelected(t.Row, t.Col)
	}
	return true
}

// confirmSafe resolves the pending selection as a diamond. A second call
// for the same selection is a no-op: the waiting guard has already
// cleared. Winning (last safe tile) latches game over synchronously, runs
// the cosmetic reveal-all, and fires OnWin exactly once.
func (g *Game) confirmSafe() bool {
	t := g.takeSelection()
	if t == nil {
		return false
	}

	g.board.revealedSafe++
	won := g.board.revealedSafe == g.board.totalSafe()

	delay := g.anim.playerFlipDelay(g.board.revealedSafe-1, g.board.totalSafe())
	g.anim.flipAfter(t, FaceDiamond, delay, nil)

	if won {
		g.phase = PhaseWon
		g.board.gameOver = true
		g.board.revealAll(g.anim, g.rng, nil)
		g.anim.sounds.play(soundWin)
		g.changed()
		if g.cbs.OnWin != nil {
			g.cbs.OnWin()
		}
		return true
	}

	g.phase = PhaseIdle
	g.changed()
	return true
}

// confirmBomb resolves the pending selection as a mine. Game over is
// latched before any animation starts, so no tap sneaks in during the
// cascade. The flip ends in shake and explosion; the remaining tiles
// cascade with mines-1 more bombs; OnGameOver fires exactly once.
func (g *Game) confirmBomb() bool {
	t := g.takeSelection()
	if t == nil {
		return false
	}

	g.phase = PhaseLost
	g.board.gameOver = true

	delay := g.anim.playerFlipDelay(g.board.revealedSafe, g.board.totalSafe())
	g.anim.flipAfter(t, FaceBomb, delay, func() {
		g.anim.shake(t)
		g.anim.explode(t)
	})
	g.board.revealAll(g.anim, g.rng, t)

	g.changed()
	if g.cbs.OnGameOver != nil {
		g.cbs.OnGameOver()
	}
	return true
}

// takeSelection claims the pending selection, clearing the waiting state.
// Returns nil when no selection is pending or the tile already resolved —
// the guard that makes double confirms no-ops.
func (g *Game) takeSelection() *Tile {
	if g.phase != PhaseWaiting || g.selected == nil {
		return nil
	}
	t := g.selected
	g.selected = nil
	if t.Revealed() || t.State() == TileFlipping {
		g.phase = PhaseIdle
		return nil
	}
	return t
}

// reset clears the selection and game over, rebuilds the board, and replays
// the entrance animation. Valid from any phase.
func (g *Game) reset() {
	g.phase = PhaseIdle
	g.selected = nil
	g.board.revealedSafe = 0
	g.board.gameOver = false
	g.board.build()
	g.anim.entrance(g.board.tiles)
	g.changed()
}

// setMineCount clamps n to [1, Grid²-1] and resets.
func (g *Game) setMineCount(n int) {
	g.board.Mines = clampMines(n, g.board.Grid)
	g.reset()
}

// resize rebuilds the board at a new canvas size, carrying revealed faces
// over. A pending selection survives: the fresh tile at the same cell goes
// back to waiting (its wiggle does not replay — animation state is
// deliberately dropped on rebuild).
func (g *Game) resize(newSize float64) {
	var pending *CellRef
	if g.selected != nil {
		pending = &CellRef{Row: g.selected.Row, Col: g.selected.Col}
	}
	g.board.resize(newSize)
	if pending != nil {
		t := g.board.TileAt(pending.Row, pending.Col)
		t.setState(TileWaiting)
		g.selected = t
	}
	g.changed()
}
