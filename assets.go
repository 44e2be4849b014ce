package minegrid

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
)

// assetBank holds the optional visual assets. Any nil field simply means
// the corresponding feature stays off; rendering falls back to colored
// quads. Loading is attempted once at Create — there is no retry.
type assetBank struct {
	diamond   *ebiten.Image
	bomb      *ebiten.Image
	explosion []*ebiten.Image // sheet sliced into frames, playback order
}

// loadAssets reads every configured image from fsys. Each failure is logged
// with the asset name and skipped; a nil fsys skips everything silently.
func loadAssets(log *logrus.Logger, fsys fs.FS, o *Options) *assetBank {
	bank := &assetBank{}
	if fsys == nil {
		return bank
	}

	bank.diamond = loadImage(log, fsys, "diamond icon", o.Paths.DiamondIcon)
	bank.bomb = loadImage(log, fsys, "bomb icon", o.Paths.BombIcon)

	if sheet := loadImage(log, fsys, "explosion sheet", o.Paths.ExplosionSheet); sheet != nil {
		frames, err := sliceSheet(sheet, o.SheetCols, o.SheetRows)
		if err != nil {
			log.WithFields(logrus.Fields{"asset": "explosion sheet", "error": err}).
				Warn("minegrid: explosion overlay disabled")
		} else {
			bank.explosion = frames
		}
	}
	return bank
}

// loadImage decodes one image, returning nil (feature disabled) on any
// failure. An empty path is a deliberate opt-out and is not logged.
func loadImage(log *logrus.Logger, fsys fs.FS, name, path string) *ebiten.Image {
	if path == "" {
		return nil
	}
	f, err := fsys.Open(path)
	if err != nil {
		log.WithFields(logrus.Fields{"asset": name, "path": path, "error": err}).
			Warn("minegrid: asset load failed, feature disabled")
		return nil
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		log.WithFields(logrus.Fields{"asset": name, "path": path, "error": err}).
			Warn("minegrid: asset decode failed, feature disabled")
		return nil
	}
	return img
}

// sliceSheet cuts a sprite sheet into cols × rows equally sized frames in
// row-major playback order.
func sliceSheet(sheet *ebiten.Image, cols, rows int) ([]*ebiten.Image, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid sheet layout %d×%d", cols, rows)
	}
	bounds := sheet.Bounds()
	fw := bounds.Dx() / cols
	fh := bounds.Dy() / rows
	if fw == 0 || fh == 0 {
		return nil, fmt.Errorf("sheet %dx%d too small for %d×%d frames", bounds.Dx(), bounds.Dy(), cols, rows)
	}

	frames := make([]*ebiten.Image, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := bounds.Min.X + c*fw
			y := bounds.Min.Y + r*fh
			frame := sheet.SubImage(image.Rect(x, y, x+fw, y+fh)).(*ebiten.Image)
			frames = append(frames, frame)
		}
	}
	return frames, nil
}
