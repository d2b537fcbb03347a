package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	errUnauthorized = errors.New("session token required")
	errForbidden    = errors.New("token does not grant access to this session")
)

type GameHandler struct {
	logger   *slog.Logger
	store    *session.Store
	tokens   *config.Tokens
	ws       *config.WebSocket
	defaults mines.GameParams
	now      func() time.Time
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	tokens *config.Tokens,
	ws *config.WebSocket,
	defaults mines.GameParams,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		store:    store,
		tokens:   tokens,
		ws:       ws,
		defaults: defaults,
		now:      time.Now,
	}
}

// authorize checks that the request carries a token issued for the session
// named in the path and returns that session.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")

	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		sendJSONOrLog(w, g.logger, http.StatusUnauthorized, wrapError(errUnauthorized))
		return nil, false
	}
	if claims.SessionID != id {
		sendJSONOrLog(w, g.logger, http.StatusForbidden, wrapError(errForbidden))
		return nil, false
	}

	s, err := g.store.Get(id)
	if err != nil {
		g.sendError(w, err)
		return nil, false
	}
	return s, true
}

func (g GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	presets := mines.Presets()
	dto := make([]PresetDTO, 0, len(presets))
	for name, p := range presets {
		dto = append(dto, PresetDTO{
			Name:      name,
			Rows:      p.Rows,
			Cols:      p.Cols,
			MineCount: p.MineCount,
		})
	}
	slices.SortFunc(dto, func(a, b PresetDTO) int {
		return a.Rows*a.Cols - b.Rows*b.Cols
	})
	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, g.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	params, err := dto.Params(g.defaults)
	if err != nil {
		g.sendError(w, err)
		return
	}

	s, err := g.store.Create(params, dto.Seed)
	if err != nil {
		g.sendError(w, err)
		return
	}

	token, err := g.tokens.Sign(s.ID, g.now())
	if err != nil {
		if derr := g.store.Delete(s.ID); derr != nil {
			g.logger.Warn("unable to drop unsigned session",
				slog.String("id", s.ID), slog.Any("error", derr))
		}
		g.sendError(w, err)
		return
	}

	g.logger.Debug(
		"new game",
		slog.String("id", s.ID),
		slog.String("params", params.String()),
	)

	res := NewGameSessionDTO(s.Snapshot())
	res.Token = token
	sendJSONOrLog(w, g.logger, http.StatusCreated, res)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, g.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	outcome, err := s.Reveal(pos.Row, pos.Col, g.now())
	if err != nil {
		g.sendError(w, err)
		return
	}

	g.logger.Debug(
		"reveal",
		slog.String("id", s.ID),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.String("outcome", outcome.Kind.String()),
	)

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Replant(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	if err := s.Replant(g.now()); err != nil {
		g.sendError(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	if err := g.store.Delete(s.ID); err != nil {
		g.sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
