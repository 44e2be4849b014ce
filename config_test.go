package minegrid

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()

	if o.Grid != 5 || o.Mines != 3 || o.CanvasSize != 600 {
		t.Errorf("board defaults = (%d, %d, %d), want (5, 3, 600)", o.Grid, o.Mines, o.CanvasSize)
	}
	if o.Logger == nil {
		t.Fatal("no default logger")
	}
	if o.Logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("default log level = %v, want warn", o.Logger.GetLevel())
	}
	if o.HoverInEase == nil || o.HoverOutEase == nil || o.FlipEase == nil {
		t.Error("default easings not set")
	}
	if o.FlipMinDelay >= o.FlipMaxDelay {
		t.Errorf("FlipMinDelay %f not below FlipMaxDelay %f", o.FlipMinDelay, o.FlipMaxDelay)
	}
	if o.SheetCols != 4 || o.SheetRows != 4 {
		t.Errorf("sheet layout = %d×%d, want 4×4", o.SheetCols, o.SheetRows)
	}
}

func TestOptionsExplicitValuesKept(t *testing.T) {
	o := Options{Grid: 7, Mines: 10, CanvasSize: 900, HoverLift: 11}.withDefaults()
	if o.Grid != 7 || o.Mines != 10 || o.CanvasSize != 900 {
		t.Errorf("explicit board options overridden: %d, %d, %d", o.Grid, o.Mines, o.CanvasSize)
	}
	if o.HoverLift != 11 {
		t.Errorf("HoverLift = %f, want 11", o.HoverLift)
	}
}

func TestOptionsMineClampOnDefaults(t *testing.T) {
	o := Options{Grid: 3, Mines: 100}.withDefaults()
	if o.Mines != 8 {
		t.Errorf("Mines = %d, want clamped 8", o.Mines)
	}
	o = Options{Grid: 3, Mines: -2}.withDefaults()
	if o.Mines != 1 {
		t.Errorf("Mines = %d, want clamped 1", o.Mines)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Grid: 1}).withDefaults().validate(); err == nil {
		t.Error("grid 1 accepted")
	}
	if err := (Options{Grid: 100, CanvasSize: 50}).withDefaults().validate(); err == nil {
		t.Error("canvas smaller than the grid accepted")
	}
	if err := (Options{}).withDefaults().validate(); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
}

func TestCreateRejectsUnplayableOptions(t *testing.T) {
	if _, err := Create(Options{Grid: 1}); err == nil {
		t.Error("Create accepted a 1×1 grid")
	}
	if _, err := Create(Options{Grid: 200, CanvasSize: 100}); err == nil {
		t.Error("Create accepted an oversized grid")
	}
}

func TestCreateHeadlessWithoutAssets(t *testing.T) {
	eng, err := Create(Options{Seed: 42})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	st := eng.State()
	if st.Grid != 5 || st.Mines != 3 || st.TotalSafe != 22 {
		t.Errorf("snapshot = %+v, want 5×5 board with 3 mines", st)
	}
	if st.GameOver || st.WaitingForChoice || st.Selected != nil {
		t.Errorf("fresh engine not idle: %+v", st)
	}

	// Assets absent: explosion and sounds must be disabled, not broken.
	if eng.anim.explosionFrames != 0 {
		t.Error("explosion frames present without a sheet")
	}
	if eng.sounds != nil {
		t.Error("sound bank created without sound paths")
	}
}
