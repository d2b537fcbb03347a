package config

import (
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader       websocket.Upgrader
	MaxMessageSize int64
	WriteWait      time.Duration
}

// NewWebSocket accepts handshakes from the given origins, or from any
// origin when none are given, mirroring the CORS policy.
func NewWebSocket(origins []string) (*WebSocket, error) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(origins) == 0 || origin == "" || slices.Contains(origins, origin)
		},
	}

	ws := &WebSocket{
		Upgrader:       upgrader,
		MaxMessageSize: 1024,
		WriteWait:      10 * time.Second,
	}

	return ws, nil
}
