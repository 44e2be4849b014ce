package minegrid

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// winPopup is the cosmetic overlay shown by Engine.ShowWinPopup. It fades
// in, holds the multiplier and payout text, and dismisses itself after the
// configured duration (or immediately on Reset).
type winPopup struct {
	visible    bool
	multiplier float64
	amount     float64
	alpha      float64
	remaining  float32

	panel *ebiten.Image // lazily created in draw; never touched headless
}

func (p *winPopup) show(multiplier, amount float64, duration float32) {
	p.visible = true
	p.multiplier = multiplier
	p.amount = amount
	p.remaining = duration
	p.alpha = 0
}

func (p *winPopup) hide() {
	p.visible = false
	p.alpha = 0
}

// update advances the fade and the dwell timer.
func (p *winPopup) update(dt float32) {
	if !p.visible {
		return
	}
	if p.alpha < 1 {
		p.alpha = clamp01(p.alpha + float64(dt)*6)
	}
	p.remaining -= dt
	if p.remaining <= 0 {
		p.hide()
	}
}

const (
	popupWidth  = 220
	popupHeight = 64
)

// draw renders the popup centered on the screen.
func (p *winPopup) draw(screen *ebiten.Image) {
	if !p.visible {
		return
	}
	if p.panel == nil {
		p.panel = ebiten.NewImage(popupWidth, popupHeight)
	}

	p.panel.Clear()
	p.panel.Fill(color.RGBA{20, 26, 38, 230})
	ebitenutil.DebugPrintAt(p.panel, fmt.Sprintf("WIN  x%.2f", p.multiplier), 16, 14)
	ebitenutil.DebugPrintAt(p.panel, fmt.Sprintf("+%.2f", p.amount), 16, 34)

	bounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(
		float64(bounds.Dx()-popupWidth)/2,
		float64(bounds.Dy()-popupHeight)/2,
	)
	op.ColorScale.ScaleAlpha(float32(p.alpha))
	screen.DrawImage(p.panel, op)
}
