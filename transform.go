package minegrid

import "math"

// tileTransform composes a tile's render matrix from its animated fields.
// The matrix maps the tile's local unit square ([0,Size]×[0,Size]) into
// canvas space. Composition order:
//
//	Translate(-center) → Scale (incl. flip width collapse) → Skew →
//	Rotate → Translate(center + base + jitter − lift)
//
// Pivoting on the tile center keeps every effect (hover scale, wiggle skew,
// flip collapse, shake rotation) symmetric around the tile.
func tileTransform(t *Tile) [6]float64 {
	sx := t.ScaleX * t.WidthFactor
	sy := t.ScaleY

	sin, cos := math.Sincos(t.Rotation)

	var tanSkewX, tanSkewY float64
	if t.SkewX != 0 {
		tanSkewX = math.Tan(t.SkewX)
	}
	if t.SkewY != 0 {
		tanSkewY = math.Tan(t.SkewY)
	}

	// Scale, then skew.
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	// Pivot on the tile center.
	half := t.Size / 2
	preTx := -half*sx - tanSkewX*half*sy
	preTy := -tanSkewY*half*sx - half*sy

	// Rotate.
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// Back to canvas space: base position plus shake jitter minus lift.
	tx := t.X + half + t.OffsetX
	ty := t.Y + half + t.OffsetY - t.Lift
	return [6]float64{ra, rb, rc, rd, rtx + tx, rty + ty}
}

// applyAffine transforms the point (x, y) by m.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func applyAffine(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
