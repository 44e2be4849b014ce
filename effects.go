package minegrid

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// flipMinWidth keeps the collapsing card visible as a sliver at the
// midpoint instead of degenerating to zero width.
const flipMinWidth = 0.04

// animator owns the animation effects. Every effect is fire-and-forget: it
// registers epoch-guarded tweens on the shared scheduler and returns
// immediately. Effects whose feature flag is off or whose assets failed to
// load are no-ops; none of them ever panic.
type animator struct {
	sched  *Scheduler
	opts   *Options
	rng    *rand.Rand
	sounds *soundBank // nil or partially loaded in degraded mode

	// explosionFrames is the sliced sheet length; 0 disables the overlay.
	explosionFrames int
}

// hoverIn raises and skews the tile under the pointer. Refused while the
// tile is waiting, flipping, or revealed, so those are never disturbed.
// Re-entering during a hover settle swaps the epoch: the superseded tween
// keeps running on the scheduler but writes nothing, and its completion
// handler cannot overwrite this one's terminal values.
func (a *animator) hoverIn(t *Tile) {
	if a.opts.HoverDisabled {
		return
	}
	if t.State() != TileIdle && t.State() != TileHovering {
		return
	}
	t.setState(TileHovering)
	e := t.bumpEpoch()

	fromSX, fromSY := t.ScaleX, t.ScaleY
	fromSkew := a.hoverSkewValue(t)
	fromLift := t.Lift
	toScale := 1 + a.opts.HoverScale

	a.sched.Tween(a.opts.HoverInDuration, a.opts.HoverInEase, func(p float64) {
		if !t.epochIs(e) {
			return
		}
		t.ScaleX = lerp(fromSX, toScale, p)
		t.ScaleY = lerp(fromSY, toScale, p)
		t.Lift = lerp(fromLift, a.opts.HoverLift, p)
		a.setHoverSkew(t, lerp(fromSkew, a.opts.HoverSkew, p))
	}, func() {
		if !t.epochIs(e) {
			return
		}
		t.ScaleX, t.ScaleY = toScale, toScale
		t.Lift = a.opts.HoverLift
		a.setHoverSkew(t, a.opts.HoverSkew)
	})
}

// hoverOut settles the tile back to rest. Only meaningful while hovering;
// settles are superseded the same way hovers are.
func (a *animator) hoverOut(t *Tile) {
	if a.opts.HoverDisabled || t.State() != TileHovering {
		return
	}
	e := t.bumpEpoch()

	fromSX, fromSY := t.ScaleX, t.ScaleY
	fromSkew := a.hoverSkewValue(t)
	fromLift := t.Lift

	a.sched.Tween(a.opts.HoverOutDuration, a.opts.HoverOutEase, func(p float64) {
		if !t.epochIs(e) {
			return
		}
		t.ScaleX = lerp(fromSX, 1, p)
		t.ScaleY = lerp(fromSY, 1, p)
		t.Lift = lerp(fromLift, 0, p)
		a.setHoverSkew(t, lerp(fromSkew, 0, p))
	}, func() {
		if !t.epochIs(e) {
			return
		}
		t.ScaleX, t.ScaleY = 1, 1
		t.Lift = 0
		a.setHoverSkew(t, 0)
		t.setState(TileIdle)
	})
}

func (a *animator) hoverSkewValue(t *Tile) float64 {
	if a.opts.HoverSkewAxis == AxisY {
		return t.SkewY
	}
	return t.SkewX
}

func (a *animator) setHoverSkew(t *Tile, v float64) {
	if a.opts.HoverSkewAxis == AxisY {
		t.SkewY = v
	} else {
		t.SkewX = v
	}
}

// wiggle oscillates the selected tile while the host's decision is pending.
// Runs for a fixed duration; the tile simply sits still again if the host
// is slower than that.
func (a *animator) wiggle(t *Tile) {
	if a.opts.WiggleDisabled {
		return
	}
	e := t.bumpEpoch()
	times := float64(a.opts.WiggleTimes)
	fromLift := t.Lift // settles any hover rise the tap interrupted

	a.sched.Tween(a.opts.WiggleDuration, ease.Linear, func(p float64) {
		if !t.epochIs(e) {
			return
		}
		wave := math.Sin(p * math.Pi * times)
		t.SkewX = wave * a.opts.WiggleSkew
		s := 1 + math.Abs(wave)*a.opts.WiggleScale
		t.ScaleX, t.ScaleY = s, s
		t.Lift = lerp(fromLift, 0, clamp01(p*3))
	}, func() {
		if !t.epochIs(e) {
			return
		}
		t.SkewX = 0
		t.ScaleX, t.ScaleY = 1, 1
		t.Lift = 0
	})
}

// flipAfter schedules the card flip: after delay seconds the tile's width
// collapses through max(ε, |cos(π·t)|) — full, sliver, full — with the face
// swapped exactly once when progress crosses the midpoint. A sine lift and
// tilt add the pop. onDone fires after the terminal values land; it is
// skipped if the flip was superseded (board rebuild).
func (a *animator) flipAfter(t *Tile, face Face, delay float32, onDone func()) {
	if t.Revealed() {
		return
	}
	t.setState(TileFlipping)
	t.flipFace = face
	e := t.bumpEpoch()
	t.resetVisual()

	a.sched.After(delay, func() {
		if !t.epochIs(e) {
			return
		}
		swapped := false
		a.sched.Tween(a.opts.FlipDuration, a.opts.FlipEase, func(p float64) {
			if !t.epochIs(e) {
				return
			}
			w := math.Abs(math.Cos(math.Pi * p))
			if w < flipMinWidth {
				w = flipMinWidth
			}
			t.WidthFactor = w

			if p >= 0.5 && !swapped {
				swapped = true
				t.Face = face
				a.sounds.play(soundFlip)
			}

			pop := math.Sin(math.Pi * p)
			t.Lift = a.opts.FlipLift * pop
			t.ScaleY = 1 + a.opts.FlipPop*pop
			t.Rotation = t.TiltDir * a.opts.FlipTilt * pop
		}, func() {
			if !t.epochIs(e) {
				return
			}
			// Coarse frames can finish without ever sampling p ≥ 0.5
			// mid-tween; the final update always does, so swapped is set
			// here. Guard anyway for a zero-length flip.
			if !swapped {
				t.Face = face
			}
			t.resetVisual()
			t.setState(TileRevealed)
			if onDone != nil {
				onDone()
			}
		})
	})
}

// playerFlipDelay interpolates the flip start delay from FlipMaxDelay down
// to FlipMinDelay as safe reveals accumulate, so a long run of picks speeds
// up visibly.
func (a *animator) playerFlipDelay(revealedSafe, totalSafe int) float32 {
	if totalSafe <= 0 {
		return a.opts.FlipMinDelay
	}
	frac := float64(revealedSafe) / float64(totalSafe)
	return float32(lerp(float64(a.opts.FlipMaxDelay), float64(a.opts.FlipMinDelay), clamp01(frac)))
}

// shake jitters a revealed bomb tile with randomized-phase dual sines under
// an exponential decay envelope. Idempotent: re-triggering while a shake is
// running is a no-op.
func (a *animator) shake(t *Tile) {
	if a.opts.ShakeDisabled || t.shaking {
		return
	}
	t.shaking = true

	phaseX := a.rng.Float64() * 2 * math.Pi
	phaseY := a.rng.Float64() * 2 * math.Pi
	amp := a.opts.ShakeAmplitude
	decay := a.opts.ShakeDecay

	a.sched.Tween(a.opts.ShakeDuration, ease.Linear, func(p float64) {
		env := amp * math.Exp(-p*decay)
		t.OffsetX = math.Sin(p*31+phaseX) * env
		t.OffsetY = math.Sin(p*47+phaseY) * env * 0.6
		t.Rotation = math.Sin(p*17+phaseX) * env * 0.02
	}, func() {
		t.OffsetX, t.OffsetY = 0, 0
		t.Rotation = 0
		t.shaking = false
	})
}

// explode plays the sprite-sheet overlay above the tile, once, then clears
// itself. No-op when the sheet failed to load or the effect is disabled.
func (a *animator) explode(t *Tile) {
	if a.opts.ExplosionDisabled || a.explosionFrames == 0 {
		return
	}
	frames := a.explosionFrames
	t.ExplosionFrame = 0
	a.sounds.play(soundExplosion)

	a.sched.Tween(a.opts.ExplosionDuration, ease.Linear, func(p float64) {
		f := int(p * float64(frames))
		if f >= frames {
			f = frames - 1
		}
		t.ExplosionFrame = f
	}, func() {
		t.ExplosionFrame = -1
	})
}

// entrance pops a freshly built board in: each tile scales 0 → 1 with a
// slight overshoot, staggered in enumeration order.
func (a *animator) entrance(tiles []*Tile) {
	if a.opts.EntranceDisabled {
		return
	}
	for i, t := range tiles {
		t := t
		e := t.bumpEpoch()
		t.ScaleX, t.ScaleY = 0, 0
		delay := a.opts.EntranceStepDelay * float32(i)
		a.sched.After(delay, func() {
			if !t.epochIs(e) {
				return
			}
			a.sched.Tween(a.opts.EntranceDuration, ease.OutBack, func(p float64) {
				if !t.epochIs(e) {
					return
				}
				t.ScaleX, t.ScaleY = p, p
			}, func() {
				if !t.epochIs(e) {
					return
				}
				t.ScaleX, t.ScaleY = 1, 1
			})
		})
	}
}
