package app

import (
	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() error {
	defaults, err := a.config.DefaultParams()
	if err != nil {
		return err
	}

	game := handlers.NewGameHandler(
		a.logger, a.store, a.tokens, a.ws, defaults,
	)

	a.router.HandleFunc("GET /presets", game.Presets)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/replant", game.Replant)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	return nil
}
