package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a player may know about a cell.
type CellState int8

const (
	Hidden       CellState = -2
	RevealedMine CellState = 65
	/*
	 * Each item in a [Grid] is one of the following values:
	 *
	 *  - 0 to 8 mean the cell is open and shows its surrounding mine
	 *    count.
	 *
	 *  - -2 means the cell has not been revealed.
	 *
	 *  - 65 means the cell was revealed and held a mine.
	 */
)

func RevealedHint(n int) CellState {
	must(0 <= n && n <= 8, "hint out of range")
	return CellState(n)
}

// Hint returns the mine count of a revealed safe cell.
func (s CellState) Hint() (int, bool) {
	if 0 <= s && s <= 8 {
		return int(s), true
	}
	return 0, false
}

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return " "
	case s == RevealedMine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is a row-major snapshot of cell states.
type Grid []CellState

func (g Grid) ToString(width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
