package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	_, err := SendJSON(w, status, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// errorStatus maps engine and store errors onto response codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, session.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) sendError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		g.logger.Error("request failed", slog.Any("error", err))
		sendJSONOrLog(w, g.logger, status, wrapError(errors.New("internal error")))
		return
	}
	sendJSONOrLog(w, g.logger, status, wrapError(err))
}
