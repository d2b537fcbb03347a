package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Preset    string  `schema:"preset"`
	Rows      int     `schema:"rows"`
	Cols      int     `schema:"cols"`
	MineCount int     `schema:"mines"`
	Seed      *uint64 `schema:"seed"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params resolves the requested board. A preset wins over explicit
// dimensions; an empty request gets the server default.
func (dto CreateNewGameDTO) Params(defaults mines.GameParams) (mines.GameParams, error) {
	if dto.Preset != "" {
		p, ok := mines.Preset(dto.Preset)
		if !ok {
			return mines.GameParams{}, fmt.Errorf(
				"%w: unknown preset %q", mines.ErrInvalidConfiguration, dto.Preset,
			)
		}
		return p, nil
	}
	if dto.Rows == 0 && dto.Cols == 0 && dto.MineCount == 0 {
		return defaults, nil
	}
	return mines.GameParams{Rows: dto.Rows, Cols: dto.Cols, MineCount: dto.MineCount}, nil
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionID string         `json:"game_session_id"`
	Token         string         `json:"token,omitempty"`
	Rows          int            `json:"rows"`
	Cols          int            `json:"cols"`
	MineCount     int            `json:"mine_count"`
	Seed          string         `json:"seed"`
	Grid          mines.Grid     `json:"grid"`
	Dead          bool           `json:"dead"`
	Won           bool           `json:"won"`
	RevealedCount int            `json:"revealed_count"`
	Mines         []mines.Coord  `json:"mines,omitempty"`
	Last          *mines.Outcome `json:"last,omitempty"`
	StartedAt     int64          `json:"started_at"`
	EndedAt       *int64         `json:"ended_at,omitempty"`
}

// NewGameSessionDTO renders a snapshot. The seed is sent as a string since
// a uint64 does not fit in a javascript number.
func NewGameSessionDTO(snap session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionID: snap.ID,
		Rows:          snap.Params.Rows,
		Cols:          snap.Params.Cols,
		MineCount:     snap.Params.MineCount,
		Seed:          strconv.FormatUint(snap.Seed, 10),
		Grid:          snap.Grid,
		Dead:          snap.Dead,
		Won:           snap.Won,
		RevealedCount: snap.RevealedCount,
		Mines:         snap.Mines,
		Last:          snap.Last,
		StartedAt:     snap.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

type PresetDTO struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	MineCount int    `json:"mine_count"`
}
