package mines

import (
	"fmt"
	"iter"
)

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Neighbors yields the Moore neighborhood of at, clipped to the grid.
func (p GameParams) Neighbors(at Coord) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := at.Row+dr, at.Col+dc
				if !p.PointInBounds(r, c) {
					continue
				}
				if !yield(Coord{r, c}) {
					return
				}
			}
		}
	}
}

func (p GameParams) index(at Coord) int {
	return at.Row*p.Cols + at.Col
}

func (p GameParams) coord(i int) Coord {
	return Coord{Row: i / p.Cols, Col: i % p.Cols}
}
