// Package ws pushes activity events and chatbot replies to WebSocket clients.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/chatbot"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256

	MessageChat      = "chat"
	MessageChatReply = "chat_reply"
	MessageError     = "error"
)

// Message is the envelope of every frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type inbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type direct struct {
	to      *client
	payload []byte
}

// Hub tracks connected clients. Only the run loop touches the client set.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	reply      chan direct
	count      atomic.Int64

	bot    *chatbot.Bot
	logger zerolog.Logger

	upgrader websocket.Upgrader
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewHub(bot *chatbot.Bot, logger *zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, sendBufferSize),
		reply:      make(chan direct, sendBufferSize),
		bot:        bot,
		logger:     logger.With().Str("layer", "websocket").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS middleware in front of the upgrade.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
}

// Start runs the hub loop until Stop is called.
func (h *Hub) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.run(ctx)
	h.logger.Info().Msg("websocket hub started")
}

// Stop closes every connection and waits for the loop to exit.
func (h *Hub) Stop(ctx context.Context) error {
	if h.cancel == nil {
		return nil
	}
	h.cancel()
	select {
	case <-h.done:
		h.logger.Info().Msg("websocket hub stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish broadcasts an activity event to every client. It never blocks;
// events are dropped when the broadcast buffer is full.
func (h *Hub) Publish(e model.ActivityEvent) {
	payload, err := json.Marshal(Message{Type: string(e.Type), Data: e, Timestamp: e.Timestamp})
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(e.Type)).Msg("failed to marshal activity event")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Str("type", string(e.Type)).Msg("broadcast buffer full, event dropped")
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
// userID is nil for anonymous clients.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID *uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize), userID: userID}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			h.logger.Debug().Bool("authenticated", c.userID != nil).Int("clients", len(h.clients)).Msg("client connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug().Int("clients", len(h.clients)).Msg("client disconnected")
			}

		case payload := <-h.broadcast:
			for c := range h.clients {
				h.deliver(c, payload)
			}

		case d := <-h.reply:
			if _, ok := h.clients[d.to]; ok {
				h.deliver(d.to, d.payload)
			}
		}
	}
}

// deliver queues a frame for c and drops c when its buffer is full.
func (h *Hub) deliver(c *client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warn().Msg("slow client dropped")
		h.drop(c)
	}
}

// drop removes c; closing send makes its write pump close the connection.
func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// handle answers one inbound frame of c.
func (h *Hub) handle(c *client, raw []byte) {
	var in inbound
	out := Message{Timestamp: time.Now().UTC()}
	switch err := json.Unmarshal(raw, &in); {
	case err != nil:
		out.Type, out.Data = MessageError, map[string]string{"message": "Invalid message format"}
	case in.Type == MessageChat && strings.TrimSpace(in.Message) != "":
		out.Type, out.Data = MessageChatReply, map[string]string{"message": h.bot.Reply(in.Message)}
	case in.Type == MessageChat:
		out.Type, out.Data = MessageError, map[string]string{"message": "Message is required"}
	default:
		out.Type, out.Data = MessageError, map[string]string{"message": "Unsupported message type"}
	}

	b, err := json.Marshal(out)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal reply")
		return
	}
	select {
	case h.reply <- direct{to: c, payload: b}:
	case <-h.done:
	}
}
