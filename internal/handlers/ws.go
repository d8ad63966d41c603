package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"

	"github.com/ckp1990/population-ecology-games/internal/services"
)

type WSHandler struct {
	hub *services.Hub
}

func NewWSHandler(hub *services.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// HandleRequest adapts the websocket upgrade to a pocketbase route.
func (h *WSHandler) HandleRequest(re *core.RequestEvent) error {
	return h.handle(re.Response, re.Request)
}

func (h *WSHandler) handle(w http.ResponseWriter, r *http.Request) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // Configure based on environment
	})
	if err != nil {
		return err
	}

	// Each upgrade mints a fresh connection identity; reconnects are new
	// connections, continuity lives in the name-keyed ledger.
	client := services.NewClient(conn, h.hub, uuid.NewString())
	h.hub.Register(client)
	client.Start()
	return nil
}
