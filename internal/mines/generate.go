package mines

// placeMines picks MineCount distinct cells uniformly at random.
func (b *Board) placeMines() []Coord {
	n := b.Cells()

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Now pick n off the list at random.
	 */
	picked := make([]Coord, 0, b.MineCount)
	k := len(candidates)
	for range b.MineCount {
		i := b.rnd.IntN(k)
		picked = append(picked, b.coord(candidates[i]))
		k--
		candidates[i] = candidates[k]
	}

	return picked
}

// plant lays out the given mines on an empty board. Every other cell gets a
// placeholder until [Board.computeHints] runs.
//
// panics [AssertionError]
func (b *Board) plant(mines []Coord) {
	must(!b.planted, "board already planted")
	must(len(mines) == b.MineCount, "mine count mismatch")

	for i := range b.cells {
		b.cells[i] = pending
	}
	for _, at := range mines {
		must(b.PointInBounds(at.Row, at.Col), "mine out of bounds")
		i := b.index(at)
		must(b.cells[i] != mine, "duplicate mine")
		b.cells[i] = mine
	}
	b.planted = true
}

// panics [AssertionError]
func (b *Board) computeHints() {
	must(b.planted, "hints computed before mines were placed")

	for i, c := range b.cells {
		if c == mine {
			continue
		}
		v := 0
		for n := range b.Neighbors(b.coord(i)) {
			if b.cells[b.index(n)] == mine {
				v++
			}
		}
		b.cells[i] = cell(v)
	}
}
