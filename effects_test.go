package minegrid

import (
	"math/rand/v2"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestAnimator() (*animator, *Scheduler) {
	opts := Options{}.withDefaults()
	opts.FlipEase = ease.Linear // keep progress-to-time mapping obvious
	s := NewScheduler()
	return &animator{
		sched: s,
		opts:  &opts,
		rng:   rand.New(rand.NewPCG(3, 9)),
	}, s
}

func TestHoverInOut(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.hoverIn(tile)
	if tile.State() != TileHovering {
		t.Fatalf("state = %v, want hovering", tile.State())
	}

	drain(t, s, 0.02, 100)
	if !almostEqual(tile.ScaleX, 1+a.opts.HoverScale, 1e-3) {
		t.Errorf("ScaleX = %f, want %f", tile.ScaleX, 1+a.opts.HoverScale)
	}
	if !almostEqual(tile.Lift, a.opts.HoverLift, 1e-3) {
		t.Errorf("Lift = %f, want %f", tile.Lift, a.opts.HoverLift)
	}
	if !almostEqual(tile.SkewX, a.opts.HoverSkew, 1e-3) {
		t.Errorf("SkewX = %f, want %f", tile.SkewX, a.opts.HoverSkew)
	}

	a.hoverOut(tile)
	drain(t, s, 0.02, 100)
	if tile.State() != TileIdle {
		t.Errorf("state = %v after settle, want idle", tile.State())
	}
	if tile.ScaleX != 1 || tile.Lift != 0 || tile.SkewX != 0 {
		t.Errorf("transform not restored: scale=%f lift=%f skew=%f", tile.ScaleX, tile.Lift, tile.SkewX)
	}
}

func TestHoverRefusedWhileFlippingOrRevealed(t *testing.T) {
	a, _ := newTestAnimator()

	flipping := newTile(0, 0, 0, 0, 50)
	flipping.setState(TileFlipping)
	a.hoverIn(flipping)
	if flipping.State() != TileFlipping {
		t.Errorf("hover changed a flipping tile's state to %v", flipping.State())
	}

	revealed := newTile(0, 1, 0, 0, 50)
	revealed.setState(TileRevealed)
	a.hoverIn(revealed)
	if revealed.State() != TileRevealed {
		t.Errorf("hover changed a revealed tile's state to %v", revealed.State())
	}
}

// A rapid out/in swaps the epoch; the superseded settle keeps running on
// the scheduler, but neither its per-frame writes nor its completion
// handler may touch the tile again.
func TestHoverSupersededSettleWritesNothing(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.hoverIn(tile)
	drain(t, s, 0.02, 100)

	a.hoverOut(tile)
	pump(s, 0.02, 2) // settle partially underway
	a.hoverIn(tile)  // pointer re-enters, superseding the settle

	drain(t, s, 0.02, 100)
	if tile.State() != TileHovering {
		t.Errorf("state = %v, want hovering (stale settle completion must not reset to idle)", tile.State())
	}
	want := 1 + a.opts.HoverScale
	if !almostEqual(tile.ScaleX, want, 1e-3) {
		t.Errorf("ScaleX = %f, want %f (stale settle overwrote the newer hover)", tile.ScaleX, want)
	}
}

func TestWiggleOscillatesAndSettles(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.wiggle(tile)

	sawSkew := false
	for i := 0; i < 100 && s.Active() > 0; i++ {
		s.Update(0.02)
		if tile.SkewX != 0 {
			sawSkew = true
		}
	}
	if !sawSkew {
		t.Error("wiggle never skewed the tile")
	}
	if tile.SkewX != 0 || tile.ScaleX != 1 || tile.ScaleY != 1 {
		t.Errorf("wiggle did not settle: skew=%f scale=%f,%f", tile.SkewX, tile.ScaleX, tile.ScaleY)
	}
}

// Confirming mid-wiggle hands the tile to the flip; the still-running
// wiggle must not corrupt the flip transform or the final revealed state.
func TestWiggleSupersededByFlip(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.wiggle(tile)
	pump(s, 0.02, 4)
	a.flipAfter(tile, FaceDiamond, 0, nil)

	drain(t, s, 0.02, 200)
	if tile.State() != TileRevealed {
		t.Fatalf("state = %v, want revealed", tile.State())
	}
	if tile.Face != FaceDiamond {
		t.Errorf("face = %v, want diamond", tile.Face)
	}
	if tile.WidthFactor != 1 || tile.SkewX != 0 || tile.ScaleX != 1 {
		t.Errorf("transform not restored: width=%f skew=%f scale=%f", tile.WidthFactor, tile.SkewX, tile.ScaleX)
	}
}

func TestFlipFaceSwapsAtMidpointOnly(t *testing.T) {
	a, s := newTestAnimator()
	a.opts.FlipDuration = 0.4
	tile := newTile(0, 0, 0, 0, 50)

	a.flipAfter(tile, FaceBomb, 0, nil)
	if tile.State() != TileFlipping {
		t.Fatalf("state = %v, want flipping immediately", tile.State())
	}
	s.Update(0.01) // fires the zero-delay task, registering the tween

	// First half of the flip: face stays down.
	elapsed := float32(0)
	for elapsed < 0.19 {
		s.Update(0.01)
		elapsed += 0.01
		if tile.Face != FaceDown {
			t.Fatalf("face swapped at t=%.2f, before the midpoint", elapsed)
		}
	}

	// Crossing the midpoint swaps it.
	pump(s, 0.01, 3)
	if tile.Face != FaceBomb {
		t.Fatal("face did not swap after the midpoint")
	}

	drain(t, s, 0.01, 100)
	if tile.State() != TileRevealed {
		t.Errorf("state = %v, want revealed", tile.State())
	}
	if tile.WidthFactor != 1 || tile.Lift != 0 || tile.Rotation != 0 {
		t.Errorf("transform not restored: width=%f lift=%f rot=%f", tile.WidthFactor, tile.Lift, tile.Rotation)
	}
}

// A frame rate far coarser than the flip duration must still land the swap
// and the terminal state.
func TestFlipSurvivesCoarseFrames(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	done := false
	a.flipAfter(tile, FaceDiamond, 0, func() { done = true })

	s.Update(10) // fires the task
	s.Update(10) // the entire flip in one frame

	if tile.Face != FaceDiamond {
		t.Error("face not swapped under coarse stepping")
	}
	if tile.State() != TileRevealed {
		t.Errorf("state = %v, want revealed", tile.State())
	}
	if !done {
		t.Error("onDone not fired")
	}
	if tile.WidthFactor != 1 {
		t.Errorf("WidthFactor = %f, want 1", tile.WidthFactor)
	}
}

func TestFlipOnRevealedTileIsNoop(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)
	tile.Face = FaceDiamond
	tile.setState(TileRevealed)

	a.flipAfter(tile, FaceBomb, 0, nil)
	if s.Active() != 0 {
		t.Error("flip scheduled work against a revealed tile")
	}
	if tile.Face != FaceDiamond {
		t.Error("flip changed a revealed tile's face")
	}
}

func TestFlipSupersededByEpochBumpSkipsCompletion(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	done := false
	a.flipAfter(tile, FaceBomb, 0.5, func() { done = true })
	tile.bumpEpoch() // board rebuild invalidates the scheduled flip

	drain(t, s, 0.1, 100)
	if tile.Face != FaceDown {
		t.Error("superseded flip still swapped the face")
	}
	if done {
		t.Error("superseded flip still fired onDone")
	}
}

func TestPlayerFlipDelayAccelerates(t *testing.T) {
	a, _ := newTestAnimator()

	first := a.playerFlipDelay(0, 20)
	if first != a.opts.FlipMaxDelay {
		t.Errorf("delay at 0 reveals = %f, want max %f", first, a.opts.FlipMaxDelay)
	}
	last := a.playerFlipDelay(20, 20)
	if last != a.opts.FlipMinDelay {
		t.Errorf("delay at full reveals = %f, want min %f", last, a.opts.FlipMinDelay)
	}

	prev := first
	for i := 1; i <= 20; i++ {
		d := a.playerFlipDelay(i, 20)
		if d > prev {
			t.Fatalf("delay increased from %f to %f at %d reveals", prev, d, i)
		}
		prev = d
	}
}

func TestShakeIdempotentAndSettles(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.shake(tile)
	before := s.Active()
	a.shake(tile) // re-entry while shaking is a no-op
	if s.Active() != before {
		t.Errorf("re-triggered shake scheduled more work: %d -> %d", before, s.Active())
	}

	sawJitter := false
	for i := 0; i < 200 && s.Active() > 0; i++ {
		s.Update(0.01)
		if tile.OffsetX != 0 || tile.OffsetY != 0 {
			sawJitter = true
		}
	}
	if !sawJitter {
		t.Error("shake never moved the tile")
	}
	if tile.OffsetX != 0 || tile.OffsetY != 0 || tile.Rotation != 0 {
		t.Errorf("shake did not settle: offset=(%f, %f) rot=%f", tile.OffsetX, tile.OffsetY, tile.Rotation)
	}
	if tile.shaking {
		t.Error("shaking flag still set after completion")
	}

	// A finished shake may be retriggered.
	a.shake(tile)
	if s.Active() == 0 {
		t.Error("shake refused to run again after settling")
	}
}

func TestExplodeRequiresSheet(t *testing.T) {
	a, s := newTestAnimator()
	tile := newTile(0, 0, 0, 0, 50)

	a.explode(tile) // no frames loaded
	if s.Active() != 0 || tile.ExplosionFrame != -1 {
		t.Error("explosion ran without a sheet")
	}

	a.explosionFrames = 8
	a.explode(tile)
	if tile.ExplosionFrame != 0 {
		t.Fatalf("ExplosionFrame = %d at start, want 0", tile.ExplosionFrame)
	}

	prev := 0
	for i := 0; i < 200 && s.Active() > 0; i++ {
		s.Update(0.01)
		if f := tile.ExplosionFrame; f >= 0 {
			if f < prev {
				t.Fatalf("frame went backwards: %d -> %d", prev, f)
			}
			if f > 7 {
				t.Fatalf("frame %d out of range", f)
			}
			prev = f
		}
	}
	if tile.ExplosionFrame != -1 {
		t.Errorf("ExplosionFrame = %d after playback, want -1", tile.ExplosionFrame)
	}
}

func TestEntranceStaggersAndLandsAtFullScale(t *testing.T) {
	a, s := newTestAnimator()
	tiles := []*Tile{
		newTile(0, 0, 0, 0, 50),
		newTile(0, 1, 60, 0, 50),
		newTile(0, 2, 120, 0, 50),
	}

	a.entrance(tiles)
	for _, tile := range tiles {
		if tile.ScaleX != 0 {
			t.Fatalf("tile (%d,%d) not hidden at entrance start", tile.Row, tile.Col)
		}
	}

	drain(t, s, 0.02, 200)
	for _, tile := range tiles {
		if tile.ScaleX != 1 || tile.ScaleY != 1 {
			t.Errorf("tile (%d,%d) scale = (%f, %f), want (1, 1)", tile.Row, tile.Col, tile.ScaleX, tile.ScaleY)
		}
	}
}
