package session

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrTooLarge = errors.New("board too large")
)

// Store keeps live game sessions in memory.
type Store struct {
	logger   *slog.Logger
	ttl      time.Duration
	maxCells int
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(logger *slog.Logger, ttl time.Duration, maxCells int) *Store {
	return &Store{
		logger:   logger,
		ttl:      ttl,
		maxCells: maxCells,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

func RandomSeed() uint64 {
	return new(maphash.Hash).Sum64()
}

// Create starts a new game. A nil seed picks a random one.
func (st *Store) Create(params mines.GameParams, seed *uint64) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if st.maxCells > 0 && params.Cells() > st.maxCells {
		return nil, fmt.Errorf(
			"%w: %d cells requested, at most %d allowed",
			ErrTooLarge, params.Cells(), st.maxCells,
		)
	}

	s := RandomSeed()
	if seed != nil {
		s = *seed
	}

	session, err := newSession(uuid.NewString(), params, s, st.now())
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	st.logger.Debug(
		"session created",
		slog.String("id", session.ID),
		slog.String("params", params.String()),
		slog.Uint64("seed", s),
	)
	return session, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	session.touch(st.now())
	return session, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions that have been idle for longer than the store's TTL
// and returns how many were dropped.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, session := range st.sessions {
		if session.idle(now) > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps the store every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.logger.Info(
					"swept idle sessions",
					slog.Int("count", n),
					slog.Int("remaining", st.Len()),
				)
			}
		}
	}
}
