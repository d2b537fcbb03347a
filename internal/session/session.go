package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrGameOver = errors.New("game is over")

// Session owns one board. All engine calls go through the session so that a
// cascade is applied as a single update.
type Session struct {
	ID     string
	Params mines.GameParams
	Seed   uint64

	mu        sync.Mutex
	board     *mines.Board
	startedAt time.Time
	endedAt   *time.Time
	lastSeen  time.Time
	last      *mines.Outcome
}

type Snapshot struct {
	ID            string
	Params        mines.GameParams
	Seed          uint64
	Grid          mines.Grid
	Dead          bool
	Won           bool
	RevealedCount int
	Mines         []mines.Coord // only once the game is over
	Last          *mines.Outcome
	StartedAt     time.Time
	EndedAt       *time.Time
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newSession(id string, params mines.GameParams, seed uint64, now time.Time) (*Session, error) {
	board, err := mines.NewFromParams(params, newRand(seed))
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        id,
		Params:    params,
		Seed:      seed,
		board:     board,
		startedAt: now,
		lastSeen:  now,
	}
	return s, nil
}

// Reveal applies one reveal move. Moves on a finished game are refused with
// [ErrGameOver].
func (s *Session) Reveal(row, col int, now time.Time) (mines.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
	if s.board.Over() {
		return mines.Outcome{}, ErrGameOver
	}
	outcome, err := s.board.Reveal(row, col)
	if err != nil {
		return mines.Outcome{}, err
	}
	s.last = &outcome
	if s.board.Over() {
		ended := now
		s.endedAt = &ended
	}
	return outcome, nil
}

// Replant starts the game over on a new layout of the same size.
func (s *Session) Replant(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.Replant(); err != nil {
		return fmt.Errorf("unable to replant board: %w", err)
	}
	s.startedAt, s.endedAt, s.last = now, nil, nil
	s.lastSeen = now
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.ID,
		Params:        s.Params,
		Seed:          s.Seed,
		Grid:          s.board.View(),
		Dead:          s.board.Dead(),
		Won:           s.board.Won(),
		RevealedCount: s.board.RevealedCount(),
		Last:          s.last,
		StartedAt:     s.startedAt,
		EndedAt:       s.endedAt,
	}
	if s.board.Over() {
		snap.Mines = s.board.AllMineCoordinates()
	}
	return snap
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
