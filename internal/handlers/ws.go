package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsReplant wsCommand = "n"
)

type gameExecutor struct {
	*session.Session
	now func() time.Time
}

func (game gameExecutor) openCell(args []string) error {
	row, col, err := parseRowCol(args)
	if err != nil {
		return err
	}
	_, err = game.Reveal(row, col, game.now())
	return err
}

func (game gameExecutor) execute(query string) error {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil
	case wsOpen:
		return game.openCell(args)
	case wsReplant:
		return game.Replant(game.now())
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type wsResponse struct {
	*GameSessionDTO
	Error string `json:"error,omitempty"`
}

// wsRunGameLoop reads newline separated commands and answers each message
// with the resulting game state. A failed command is reported and the rest
// of the message is skipped. Every message keeps the session alive; the loop
// ends once the session has been deleted or swept.
func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, game gameExecutor) error {
	conn.SetReadLimit(g.ws.MaxMessageSize)
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		if _, err := g.store.Get(game.ID); err != nil {
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
				time.Now().Add(g.ws.WriteWait),
			)
			return err
		}

		var res wsResponse
		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			if err := game.execute(line); err != nil {
				res.Error = err.Error()
				break
			}
		}
		res.GameSessionDTO = NewGameSessionDTO(game.Snapshot())

		conn.SetWriteDeadline(time.Now().Add(g.ws.WriteWait))
		if err := conn.WriteJSON(res); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection", slog.String("id", s.ID))

	game := gameExecutor{Session: s, now: g.now}
	if err := g.wsRunGameLoop(conn, game); err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
			return
		}
		g.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}

func parseRowCol(args []string) (row int, col int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected row and col")
		return
	}
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("row must be an int")
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("col must be an int")
		return
	}
	return
}
