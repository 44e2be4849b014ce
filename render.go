package minegrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// clearColor is the canvas background behind the tile grid.
var clearColor = Color{R: 0.09, G: 0.10, B: 0.14, A: 1}

// whitePixel is a 1×1 white image scaled up for solid tile quads. Created
// lazily on first draw so logic-only (headless) use never allocates GPU
// resources.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// geoMFromAffine loads a [a, b, c, d, tx, ty] affine matrix into a GeoM.
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// draw renders the whole frame: background, tile quads with face icons,
// explosion overlays, popup, and the optional FPS counter.
func (e *Engine) draw(screen *ebiten.Image) {
	screen.Fill(clearColor.toRGBA())

	px := ensureWhitePixel()
	for _, t := range e.game.board.tiles {
		e.drawTile(screen, px, t)
	}
	for _, t := range e.game.board.tiles {
		e.drawExplosion(screen, t)
	}

	e.popup.draw(screen)

	if e.opts.ShowFPS {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 8, 8)
	}
}

func (e *Engine) drawTile(screen, px *ebiten.Image, t *Tile) {
	m := tileTransform(t)

	op := &ebiten.DrawImageOptions{}
	// whitePixel is 1×1; scale to the tile's local square first.
	op.GeoM.Scale(t.Size, t.Size)
	op.GeoM.Concat(geoMFromAffine(m))

	c := e.faceColor(t.Face)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	screen.DrawImage(px, op)

	icon := e.faceIcon(t.Face)
	if icon == nil {
		return
	}
	ib := icon.Bounds()
	iw, ih := float64(ib.Dx()), float64(ib.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	// Fit the icon into 70% of the tile, centered, under the same transform.
	fit := t.Size * 0.7 / maxf(iw, ih)
	iop := &ebiten.DrawImageOptions{}
	iop.GeoM.Scale(fit, fit)
	iop.GeoM.Translate((t.Size-iw*fit)/2, (t.Size-ih*fit)/2)
	iop.GeoM.Concat(geoMFromAffine(m))
	screen.DrawImage(icon, iop)
}

func (e *Engine) drawExplosion(screen *ebiten.Image, t *Tile) {
	if t.ExplosionFrame < 0 || t.ExplosionFrame >= len(e.assets.explosion) {
		return
	}
	frame := e.assets.explosion[t.ExplosionFrame]
	fb := frame.Bounds()
	fw, fh := float64(fb.Dx()), float64(fb.Dy())
	if fw == 0 || fh == 0 {
		return
	}

	// Oversized relative to the tile so the blast spills over the edges.
	span := t.Size * 1.6
	fit := span / maxf(fw, fh)
	cx := t.X + t.Size/2 + t.OffsetX
	cy := t.Y + t.Size/2 + t.OffsetY - t.Lift

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(fit, fit)
	op.GeoM.Translate(cx-fw*fit/2, cy-fh*fit/2)
	screen.DrawImage(frame, op)
}

func (e *Engine) faceColor(f Face) Color {
	switch f {
	case FaceDiamond:
		return e.opts.DiamondColor
	case FaceBomb:
		return e.opts.BombColor
	default:
		return e.opts.FaceDownColor
	}
}

func (e *Engine) faceIcon(f Face) *ebiten.Image {
	switch f {
	case FaceDiamond:
		return e.assets.diamond
	case FaceBomb:
		return e.assets.bomb
	default:
		return nil
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
