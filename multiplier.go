package minegrid

// Multiplier returns the standard stake-style payout multiplier for having
// revealed revealedSafe tiles on a grid×grid board with the given mine
// count: the product of the inverse survival odds of each successive safe
// pick. Zero reveals pay 1×. Hosts typically feed the result straight into
// ShowWinPopup; the engine itself never pays anything out.
func Multiplier(revealedSafe, mines, grid int) float64 {
	total := float64(grid * grid)
	safe := total - float64(clampMines(mines, grid))
	if revealedSafe <= 0 {
		return 1
	}
	if float64(revealedSafe) > safe {
		revealedSafe = int(safe)
	}

	m := 1.0
	for i := 0; i < revealedSafe; i++ {
		remaining := total - float64(i)
		safeRemaining := safe - float64(i)
		m *= remaining / safeRemaining
	}
	return m
}
