package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lokalBack/internal/models"
)

const (
	wsReadLimit     = 1 << 20
	wsReadDeadline  = 120 * time.Second
	wsWriteDeadline = 5 * time.Second
	wsPingInterval  = 15 * time.Second
)

// FavoritesHub fans favorites change events out to every connected
// websocket client. All access to clients happens in Run.
type FavoritesHub struct {
	errorLog   *log.Logger
	clients    map[*websocket.Conn]struct{}
	broadcast  chan models.FavoritesEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

func NewFavoritesHub(errorLog *log.Logger) *FavoritesHub {
	return &FavoritesHub{
		errorLog:   errorLog,
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan models.FavoritesEvent),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *FavoritesHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = struct{}{}

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				_ = conn.Close()
				delete(h.clients, conn)
			}

		case event := <-h.broadcast:
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteJSON(event); err != nil {
					h.errorLog.Printf("favorites broadcast error: %v", err)
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// PublishFavorites implements services.FavoritesPublisher.
func (h *FavoritesHub) PublishFavorites(event models.FavoritesEvent) {
	h.broadcast <- event
}

var favoritesUpgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (app *application) ServeFavoritesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := favoritesUpgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade error: %v", err)
		return
	}

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	app.favoritesHub.register <- conn

	go favoritesPingLoop(app.favoritesHub, conn)
	go drainFavoritesWS(app.favoritesHub, conn)
}

func favoritesPingLoop(hub *FavoritesHub, conn *websocket.Conn) {
	t := time.NewTicker(wsPingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			hub.unregister <- conn
			return
		}
	}
}

// The feed is server-to-client only. Reading keeps pongs flowing and
// detects a closed peer.
func drainFavoritesWS(hub *FavoritesHub, conn *websocket.Conn) {
	defer func() {
		hub.unregister <- conn
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
