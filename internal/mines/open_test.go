package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealSingleCellWins(t *testing.T) {
	b, err := New(1, 1, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	state, err := b.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Hidden, state)

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, outcome.Kind)
	assert.True(t, b.Won())
	assert.True(t, b.Over())

	state, err = b.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, RevealedHint(0), state)
}

func TestRevealOutOfBounds(t *testing.T) {
	b := layout(t, 3, 4, Coord{1, 1})

	for _, at := range []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {3, 4}, {100, 100}} {
		_, err := b.Reveal(at.Row, at.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "reveal %s", at)

		_, err = b.CellState(at.Row, at.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "state %s", at)

		_, err = b.IsMine(at.Row, at.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "is mine %s", at)
	}
	assert.Zero(t, b.RevealedCount())
	assert.False(t, b.Over())
}

func TestRevealIdempotent(t *testing.T) {
	b := layout(t, 3, 3, Coord{0, 0}, Coord{2, 2})

	outcome, err := b.Reveal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: Revealed, Hint: 1}, outcome)

	view := b.View()
	count := b.RevealedCount()

	outcome, err = b.Reveal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, AlreadyRevealed, outcome.Kind)
	assert.Equal(t, view, b.View())
	assert.Equal(t, count, b.RevealedCount())
}

func TestRevealMineLoses(t *testing.T) {
	b := layout(t, 3, 3, Coord{0, 0}, Coord{2, 2})

	outcome, err := b.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Lost, outcome.Kind)
	assert.True(t, b.Dead())
	assert.False(t, b.Won())

	state, err := b.CellState(2, 2)
	require.NoError(t, err)
	assert.Equal(t, RevealedMine, state)

	// the other mine stays hidden
	state, err = b.CellState(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Hidden, state)
	assert.Equal(t, []Coord{{0, 0}, {2, 2}}, b.AllMineCoordinates())
}

func TestLostBoardNeverWins(t *testing.T) {
	b := layout(t, 2, 2, Coord{0, 0})

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, outcome.Kind)

	for _, at := range []Coord{{0, 1}, {1, 0}, {1, 1}} {
		outcome, err := b.Reveal(at.Row, at.Col)
		require.NoError(t, err)
		assert.Equal(t, Outcome{Kind: Revealed, Hint: 1}, outcome)
	}
	assert.False(t, b.Won())
	assert.True(t, b.Dead())
	assert.Equal(t, 4, b.RevealedCount())
}

func TestWonBoardStaysWon(t *testing.T) {
	b := layout(t, 1, 2, Coord{0, 0})

	outcome, err := b.Reveal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, outcome.Kind)

	outcome, err = b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, outcome.Kind)
	assert.True(t, b.Won())
	assert.False(t, b.Dead())
}

func TestWinDetectedOnLastSafeCell(t *testing.T) {
	b := layout(t, 2, 2, Coord{0, 0})

	outcome, err := b.Reveal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: Revealed, Hint: 1}, outcome)

	outcome, err = b.Reveal(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: Revealed, Hint: 1}, outcome)
	assert.False(t, b.Won())

	outcome, err = b.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, outcome.Kind)
	assert.True(t, b.Won())
}

func TestWinDetectionRandomBoards(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		b, err := New(9, 9, 10, r)
		require.NoError(t, err)

		wins := 0
		for row := range b.Rows {
			for col := range b.Cols {
				if m, _ := b.IsMine(row, col); m {
					continue
				}
				before := b.nsafe
				outcome, err := b.Reveal(row, col)
				require.NoError(t, err)

				switch outcome.Kind {
				case Won:
					wins++
					assert.Equal(t, b.SafeCells(), b.nsafe)
					assert.Less(t, before, b.SafeCells())
				case Revealed:
					assert.Less(t, b.nsafe, b.SafeCells())
				case AlreadyRevealed:
					assert.Equal(t, before, b.nsafe)
				default:
					t.Fatalf("unexpected outcome %s", outcome.Kind)
				}
			}
		}
		assert.Equal(t, 1, wins)
		assert.True(t, b.Won())
		assert.Equal(t, b.SafeCells(), b.RevealedCount())
	}
}

func TestCascadeExample(t *testing.T) {
	b := layout(t, 3, 3, Coord{0, 0}, Coord{2, 2})

	outcome, err := b.Reveal(0, 2)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: Revealed, Hint: 0}, outcome)

	H := Hidden
	assert.Equal(t, Grid{
		H, 1, 0,
		H, 2, 1,
		H, H, H,
	}, b.View())
	assert.Equal(t, 4, b.RevealedCount())
}

func TestCascadeClearsBoard(t *testing.T) {
	b := layout(t, 4, 4, Coord{3, 3})

	outcome, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, outcome.Kind)
	assert.Equal(t, 15, b.RevealedCount())

	state, err := b.CellState(3, 3)
	require.NoError(t, err)
	assert.Equal(t, Hidden, state)
}

// zeroRegion computes the cells a cascade from start must open, without
// going through the board's own reveal code.
func zeroRegion(b *Board, start Coord) map[Coord]bool {
	region := map[Coord]bool{start: true}
	queue := []Coord{start}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		if hintAt(b, at.Row, at.Col) != 0 {
			continue
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := Coord{at.Row + dr, at.Col + dc}
				if n.Row < 0 || n.Row >= b.Rows || n.Col < 0 || n.Col >= b.Cols {
					continue
				}
				if !region[n] {
					region[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return region
}

func TestCascadeRevealsZeroRegion(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		b, err := New(16, 16, 40, r)
		require.NoError(t, err)

		start, found := Coord{}, false
		for i, c := range b.cells {
			if c == 0 {
				start, found = b.coord(i), true
				break
			}
		}
		if !found {
			continue
		}

		want := zeroRegion(b, start)
		outcome, err := b.Reveal(start.Row, start.Col)
		require.NoError(t, err)

		if len(want) == b.SafeCells() {
			assert.Equal(t, Won, outcome.Kind)
		} else {
			assert.Equal(t, Outcome{Kind: Revealed, Hint: 0}, outcome)
		}

		assert.Equal(t, len(want), b.RevealedCount())
		for i := range b.cells {
			at := b.coord(i)
			assert.Equal(t, want[at], b.revealed[i], "cell %s", at)
			if want[at] {
				assert.NotEqual(t, mine, b.cells[i], "cell %s", at)
			}
		}
	}
}

func TestCascadeLargeBoard(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	b, err := New(1000, 1000, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	outcome, err := b.Reveal(500, 500)
	require.NoError(t, err)
	assert.Equal(t, Won, outcome.Kind)
	assert.Equal(t, 1000*1000, b.RevealedCount())
}

func TestReplantClears(t *testing.T) {
	b, err := New(9, 9, 10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	mines := b.AllMineCoordinates()
	_, err = b.Reveal(mines[0].Row, mines[0].Col)
	require.NoError(t, err)
	require.True(t, b.Dead())

	require.NoError(t, b.Replant())

	assert.False(t, b.Over())
	assert.Zero(t, b.RevealedCount())
	assert.Len(t, b.AllMineCoordinates(), 10)
	for _, s := range b.View() {
		assert.Equal(t, Hidden, s)
	}
	for row := range b.Rows {
		for col := range b.Cols {
			if m, _ := b.IsMine(row, col); !m {
				assert.LessOrEqual(t, hintAt(b, row, col), 8)
				assert.GreaterOrEqual(t, hintAt(b, row, col), 0)
			}
		}
	}
}

func TestOutcomeKindText(t *testing.T) {
	for kind, want := range map[OutcomeKind]string{
		Revealed:        "revealed",
		AlreadyRevealed: "already_revealed",
		Lost:            "lost",
		Won:             "won",
	} {
		text, err := kind.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(text))

		var parsed OutcomeKind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, kind, parsed)
	}

	var k OutcomeKind
	assert.Error(t, k.UnmarshalText([]byte("exploded")))
}
