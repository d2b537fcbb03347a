package mines

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type cell int8

const (
	pending cell = -2 // placed but hints not yet computed
	mine    cell = -1
	/* 0 to 8 are hint values */
)

// Board is a single game: a mine layout, its hints and the set of cells the
// player has revealed. A Board is not safe for concurrent use.
type Board struct {
	GameParams

	cells     []cell
	revealed  []bool
	nrevealed int
	nsafe     int // revealed cells that are not mines
	mines     []Coord
	planted   bool

	dead, won bool

	rnd *rand.Rand
}

// New places mineCount mines uniformly at random on a rows x cols board and
// computes hints. rnd is kept for [Board.Replant].
func New(rows, cols, mineCount int, rnd *rand.Rand) (*Board, error) {
	return NewFromParams(GameParams{rows, cols, mineCount}, rnd)
}

func NewFromParams(params GameParams, rnd *rand.Rand) (b *Board, err error) {
	defer recoverAssertion(&err)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	must(rnd != nil, "nil random source")

	b = &Board{GameParams: params, rnd: rnd}
	b.reset()
	b.plant(b.placeMines())
	b.computeHints()

	Log.WithFields(logrus.Fields{
		"params": params.String(),
	}).Debug("board created")

	return b, nil
}

// Replant draws a fresh mine layout with the same dimensions and mine count
// and forgets everything revealed so far.
func (b *Board) Replant() (err error) {
	defer recoverAssertion(&err)

	b.reset()
	b.plant(b.placeMines())
	b.computeHints()

	Log.WithField("params", b.GameParams.String()).Debug("board replanted")
	return nil
}

func (b *Board) reset() {
	b.cells = make([]cell, b.Cells())
	b.revealed = make([]bool, b.Cells())
	b.nrevealed, b.nsafe = 0, 0
	b.mines = nil
	b.planted = false
	b.dead, b.won = false, false
}

func (b *Board) Dead() bool {
	return b.dead
}

func (b *Board) Won() bool {
	return b.won
}

// Over reports whether a mine was hit or the board was cleared.
func (b *Board) Over() bool {
	return b.dead || b.won
}

func (b *Board) RevealedCount() int {
	return b.nrevealed
}

func (b *Board) checkBounds(row, col int) error {
	if !b.PointInBounds(row, col) {
		return fmt.Errorf(
			"%w: %d:%d on a %dx%d board",
			ErrOutOfBounds, row, col, b.Rows, b.Cols,
		)
	}
	return nil
}

func (b *Board) CellState(row, col int) (CellState, error) {
	if err := b.checkBounds(row, col); err != nil {
		return Hidden, err
	}
	return b.stateAt(b.index(Coord{row, col})), nil
}

func (b *Board) stateAt(i int) CellState {
	switch {
	case !b.revealed[i]:
		return Hidden
	case b.cells[i] == mine:
		return RevealedMine
	default:
		return RevealedHint(int(b.cells[i]))
	}
}

func (b *Board) IsMine(row, col int) (bool, error) {
	if err := b.checkBounds(row, col); err != nil {
		return false, err
	}
	return b.cells[b.index(Coord{row, col})] == mine, nil
}

// AllMineCoordinates lists every mine in row-major order. It is meant for
// end-of-game display.
func (b *Board) AllMineCoordinates() []Coord {
	if b.mines == nil {
		b.mines = make([]Coord, 0, b.MineCount)
		for i, c := range b.cells {
			if c == mine {
				b.mines = append(b.mines, b.coord(i))
			}
		}
	}
	return slices.Clone(b.mines)
}

// View copies the player's knowledge of the board.
func (b *Board) View() Grid {
	grid := make(Grid, len(b.cells))
	for i := range grid {
		grid[i] = b.stateAt(i)
	}
	return grid
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return b.View().ToString(b.Cols)
}
