// Package minegrid is a visual "Mines" minigame engine for [Ebitengine].
//
// Minegrid renders a square grid of face-down tiles. The host application
// decides whether each picked tile hides a diamond or a bomb — the engine
// never places mines itself. What the engine does own is everything visual
// and stateful around that decision: hover, wiggle-while-waiting, the card
// flip with its one-shot midpoint face swap, bomb shake, explosion overlay,
// and the staggered reveal-all cascade on game over, all driven as
// epoch-guarded tweens against a single shared frame clock.
//
// # Quick start
//
//	var eng *minegrid.Engine
//	eng, err := minegrid.Create(minegrid.Options{
//		Grid:  5,
//		Mines: 3,
//		Callbacks: minegrid.Callbacks{
//			OnCardSelected: func(row, col int) {
//				// Ask your backend, then answer exactly once:
//				eng.ConfirmSafe() // or eng.ConfirmBomb()
//			},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := eng.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Engine.Update], [Engine.Draw], and [Engine.Layout] directly.
//
// # The selection contract
//
// A tap on an eligible tile puts the engine in the waiting state and fires
// OnCardSelected exactly once. The host must eventually answer with exactly
// one of [Engine.ConfirmSafe] or [Engine.ConfirmBomb]; a second answer for
// the same selection is a no-op, and answering never is an accepted stall
// (no timeout exists). While a selection is pending no other tile can be
// tapped.
//
// # Degraded mode
//
// Icon, explosion-sheet, and sound loading failures are logged (via
// [logrus]) and disable only the affected feature. Gameplay, tile quads,
// and the state machine keep working with no assets at all.
//
// [Ebitengine]: https://ebitengine.org
// [logrus]: https://github.com/sirupsen/logrus
package minegrid
