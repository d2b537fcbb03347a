package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type OutcomeKind int8

const (
	Revealed OutcomeKind = iota
	AlreadyRevealed
	Lost
	Won
)

func (k OutcomeKind) String() string {
	switch k {
	case Revealed:
		return "revealed"
	case AlreadyRevealed:
		return "already_revealed"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// [OutcomeKind] implements [encoding.TextMarshaler]
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// [OutcomeKind] implements [encoding.TextUnmarshaler]
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for kind := Revealed; kind <= Won; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", text)
}

// Outcome is the result of a single [Board.Reveal] call. Hint is only
// meaningful when Kind is [Revealed].
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	Hint int         `json:"hint"`
}

// Reveal opens the cell at row, col. Opening a cell with no neighbouring
// mines opens its whole zero region and the numbered cells around it.
//
// Reveal never blocks moves after the game is over, but a board that has
// been lost is never reported as won.
func (b *Board) Reveal(row, col int) (Outcome, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Outcome{}, err
	}
	must(b.planted, "reveal on an unplanted board")

	i := b.index(Coord{row, col})
	if b.revealed[i] {
		return Outcome{Kind: AlreadyRevealed}, nil
	}

	b.open(i)

	if b.cells[i] == mine {
		/*
		 * The player has landed on a mine. Bad luck. A board that
		 * is already cleared stays won.
		 */
		b.dead = !b.won
		Log.WithField("cell", Coord{row, col}).Debug("mine hit")
		return Outcome{Kind: Lost}, nil
	}

	if b.cleared() {
		return Outcome{Kind: Won}, nil
	}

	if hint := int(b.cells[i]); hint > 0 {
		return Outcome{Kind: Revealed, Hint: hint}, nil
	}

	opened := b.cascade(i)
	Log.WithFields(logrus.Fields{
		"cell":   Coord{row, col},
		"opened": opened,
	}).Debug("cascade")

	if b.cleared() {
		return Outcome{Kind: Won}, nil
	}
	return Outcome{Kind: Revealed, Hint: 0}, nil
}

func (b *Board) open(i int) {
	b.revealed[i] = true
	b.nrevealed++
	if b.cells[i] != mine {
		b.nsafe++
	}
}

// cleared marks the board won once every safe cell is open.
func (b *Board) cleared() bool {
	/* If the player has already lost, don't let them win as well. */
	if b.dead {
		return false
	}
	if b.nsafe == b.SafeCells() {
		b.won = true
	}
	return b.won
}

// cascade opens the zero region around from using an explicit stack and
// returns the number of cells it opened.
//
// panics [AssertionError]
func (b *Board) cascade(from int) int {
	opened := 0
	todo := []int{from}
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for n := range b.Neighbors(b.coord(i)) {
			j := b.index(n)
			if b.revealed[j] {
				continue
			}
			must(b.cells[j] != mine, "mine next to a zero cell")
			b.open(j)
			opened++
			if b.cells[j] == 0 {
				todo = append(todo, j)
			}
		}
	}
	return opened
}
