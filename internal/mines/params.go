package mines

import (
	"fmt"
	"maps"
	"math"
	"strings"
)

type GameParams struct {
	Rows, Cols, MineCount int
}

var (
	Easy   = GameParams{Rows: 10, Cols: 10, MineCount: 10}
	Medium = GameParams{Rows: 20, Cols: 20, MineCount: 20}
	Hard   = GameParams{Rows: 20, Cols: 35, MineCount: 99}
)

var presets = map[string]GameParams{
	"easy":   Easy,
	"medium": Medium,
	"hard":   Hard,
}

// Preset looks up a difficulty preset by case-insensitive name.
func Preset(name string) (GameParams, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

func Presets() map[string]GameParams {
	return maps.Clone(presets)
}

func (p GameParams) Unpack() (rows int, cols int, mc int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Rows * p.Cols
}

// SafeCells is the number of cells that must be revealed to win.
func (p GameParams) SafeCells() int {
	return p.Cells() - p.MineCount
}

// Validate reports [ErrInvalidConfiguration] unless both dimensions are
// positive, their product fits in an int and at least one cell is left free
// of mines.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf(
			"%w: dimensions must be positive (rows = %d, cols = %d)",
			ErrInvalidConfiguration, p.Rows, p.Cols,
		)
	}
	if p.Rows > math.MaxInt/p.Cols {
		return fmt.Errorf(
			"%w: board too large (rows = %d, cols = %d)",
			ErrInvalidConfiguration, p.Rows, p.Cols,
		)
	}
	if p.MineCount < 0 || p.MineCount >= p.Cells() {
		return fmt.Errorf(
			"%w: mine count must be in [0, %d) (mine_count = %d)",
			ErrInvalidConfiguration, p.Cells(), p.MineCount,
		)
	}
	return nil
}

func (p GameParams) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

// ParseParams accepts either a preset name or the "rows:cols:mines" form
// produced by [GameParams.String]. The result is not validated.
func ParseParams(s string) (*GameParams, error) {
	if p, ok := Preset(s); ok {
		return &p, nil
	}
	p := &GameParams{}
	ss := strings.ReplaceAll(s, ":", " ")
	n, err := fmt.Sscanf(ss, "%d %d %d", &p.Rows, &p.Cols, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params (s = "%s", n = %d, err = %w)`, s, n, err,
		)
	}
	return p, nil
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}
