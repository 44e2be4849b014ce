package minegrid

import (
	"math"
	"math/rand/v2"
)

// Board owns the grid of tiles and their build/rebuild/resize lifecycle.
// It has no persistent minefield: the bomb/safe outcome of every pick is
// decided by the host, and bombs are only designated retroactively among
// the still-unrevealed tiles when the reveal-all cascade runs.
type Board struct {
	Grid      int     // board dimension (Grid × Grid tiles)
	Mines     int     // mine count, always in [1, Grid²-1]
	BoardSize float64 // square canvas edge in px

	// Layout derived by build.
	TileSize float64
	Gap      float64

	tiles        []*Tile // row-major
	revealedSafe int
	gameOver     bool
}

// newBoard builds a Board and its tiles. mines is clamped to the legal
// range rather than rejected.
func newBoard(grid, mines int, boardSize float64) *Board {
	b := &Board{
		Grid:      grid,
		Mines:     clampMines(mines, grid),
		BoardSize: boardSize,
	}
	b.build()
	return b
}

// build lays the tiles out into a centered square: gap is 2% of the board
// edge (at least 10 px) and the tile size fills what remains. Any previous
// tiles — and all their in-flight animation state — are discarded.
func (b *Board) build() {
	b.Gap = math.Max(10, math.Floor(b.BoardSize*0.02))
	b.TileSize = math.Floor((b.BoardSize - b.Gap*float64(b.Grid-1)) / float64(b.Grid))

	span := b.TileSize*float64(b.Grid) + b.Gap*float64(b.Grid-1)
	origin := math.Floor((b.BoardSize - span) / 2)

	// Orphan the outgoing tiles so any tween or deferred flip still
	// targeting them goes quiet instead of playing over the fresh board.
	for _, t := range b.tiles {
		t.bumpEpoch()
	}

	b.tiles = make([]*Tile, 0, b.Grid*b.Grid)
	for row := 0; row < b.Grid; row++ {
		for col := 0; col < b.Grid; col++ {
			x := origin + float64(col)*(b.TileSize+b.Gap)
			y := origin + float64(row)*(b.TileSize+b.Gap)
			b.tiles = append(b.tiles, newTile(row, col, x, y, b.TileSize))
		}
	}
}

// resize rebuilds the board at a new canvas size. Tiles are not repositioned
// incrementally — the grid regenerates and animation state is dropped — but
// already-revealed faces carry over so a window resize doesn't erase a game
// in progress. A tile whose flip is still in flight is already resolved, so
// it carries over as revealed on its committed face; only the animation is
// lost, never the reveal.
func (b *Board) resize(newSize float64) {
	old := b.tiles
	b.BoardSize = newSize
	b.build()
	for _, prev := range old {
		t := b.TileAt(prev.Row, prev.Col)
		switch prev.State() {
		case TileRevealed:
			t.Face = prev.Face
			t.setState(TileRevealed)
		case TileFlipping:
			t.Face = prev.flipFace
			t.setState(TileRevealed)
		}
	}
}

// TileAt returns the tile at (row, col), or nil when out of range.
func (b *Board) TileAt(row, col int) *Tile {
	if row < 0 || row >= b.Grid || col < 0 || col >= b.Grid {
		return nil
	}
	return b.tiles[row*b.Grid+col]
}

// tileAtPoint hit-tests canvas coordinates against tile base rects.
func (b *Board) tileAtPoint(x, y float64) *Tile {
	for _, t := range b.tiles {
		if t.hitRect().Contains(x, y) {
			return t
		}
	}
	return nil
}

// totalSafe is the number of tiles the player must reveal to win.
func (b *Board) totalSafe() int { return b.Grid*b.Grid - b.Mines }

// unrevealedCount counts tiles that are neither revealed nor mid-flip.
func (b *Board) unrevealedCount() int {
	n := 0
	for _, t := range b.tiles {
		if !t.Revealed() && t.State() != TileFlipping {
			n++
		}
	}
	return n
}

// revealAll runs the game-over cascade: the remaining unrevealed tiles are
// shuffled (Fisher–Yates), the first mines-1 of them become bombs (exclude
// is the triggering tile, already known to be one; after a win, exclude is
// nil and all Mines bombs are shown), and every flip is staggered with a
// monotonically increasing bomb-specific delay so the reveals cascade
// instead of landing at once. Flip completion order may still interleave:
// durations are constant while start offsets differ.
func (b *Board) revealAll(a *animator, rng *rand.Rand, exclude *Tile) {
	pool := make([]*Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		if t == exclude || t.Revealed() || t.State() == TileFlipping {
			continue
		}
		pool = append(pool, t)
	}

	// Fisher–Yates.
	for i := len(pool) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	bombs := b.Mines
	if exclude != nil {
		bombs--
	}
	if bombs > len(pool) {
		bombs = len(pool)
	}

	for i, t := range pool {
		face := FaceDiamond
		if i < bombs {
			face = FaceBomb
		}
		delay := a.opts.CascadeStartDelay + a.opts.CascadeStepDelay*float32(i)
		a.flipAfter(t, face, delay, nil)
	}
}
