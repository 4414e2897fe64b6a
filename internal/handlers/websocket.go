package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"dice-nft-backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams every persisted play to connected clients. It
// implements services.Broadcaster.
type WebSocketHandler struct {
	hub *wsHub
}

type wsHub struct {
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan *Message
	direct     chan *envelope
	done       chan struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan *Message
}

type Message struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	Data   any    `json:"data"`
}

type envelope struct {
	client *wsClient
	msg    *Message
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := &wsHub{
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan *Message, 100),
		direct:     make(chan *envelope, 100),
		done:       make(chan struct{}),
	}

	go hub.run()

	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan *Message, clientSendSize),
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()

	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.done:
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *wsClient, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendTo(client, &Message{
			Type: "PONG",
			Data: gin.H{"timestamp": time.Now().Unix()},
		})
	}
}

func (h *WebSocketHandler) sendTo(client *wsClient, msg *Message) {
	select {
	case h.hub.direct <- &envelope{client: client, msg: msg}:
	case <-h.hub.done:
	}
}

// BroadcastGamePlayed never blocks the caller; if the hub is backed up the
// update is dropped.
func (h *WebSocketHandler) BroadcastGamePlayed(game *models.GameRecord) {
	msg := &Message{
		Type:   "GAME_PLAYED",
		GameID: game.ID,
		Data:   game,
	}

	select {
	case h.hub.broadcast <- msg:
	default:
		log.Printf("WebSocket broadcast queue full, dropping update for game %s", game.ID)
	}
}

func (h *WebSocketHandler) Close() {
	close(h.hub.done)
}

func (hub *wsHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = true
			log.Printf("Client registered: %s", client.conn.RemoteAddr())

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				hub.drop(client)
				log.Printf("Client unregistered: %s", client.conn.RemoteAddr())
			}

		case message := <-hub.broadcast:
			for client := range hub.clients {
				hub.deliver(client, message)
			}

		case env := <-hub.direct:
			if hub.clients[env.client] {
				hub.deliver(env.client, env.msg)
			}

		case <-hub.done:
			for client := range hub.clients {
				hub.drop(client)
			}
			return
		}
	}
}

// deliver queues a message for a client, dropping clients that cannot keep up.
func (hub *wsHub) deliver(client *wsClient, message *Message) {
	select {
	case client.send <- message:
	default:
		log.Printf("Dropping slow client: %s", client.conn.RemoteAddr())
		hub.drop(client)
	}
}

func (hub *wsHub) drop(client *wsClient) {
	delete(hub.clients, client)
	close(client.send)
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("WebSocket write failed: %v", err)
			return
		}
	}

	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
