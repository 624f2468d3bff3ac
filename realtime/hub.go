package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Channel  string
	IsClosed bool
	Mu       sync.Mutex
}

// Message — кадр, уходящий подписчикам. Подписчики фильтруют по каналу
// и типу события.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Channel string      `json:"channel,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub держит подписчиков по каналам (event-<id>, team-<id>) и рассылает
// им опубликованные сообщения.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	channels   map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		channels:   make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.channels[client.Channel]; !ok {
				h.channels[client.Channel] = make(map[*Client]bool)
			}
			h.channels[client.Channel][client] = true
			log.Printf("Client subscribed to channel %s. Total subscribers: %d", client.Channel, len(h.channels[client.Channel]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.channels[client.Channel]; ok {
				if _, okClient := h.channels[client.Channel][client]; okClient {
					client.Mu.Lock()
					if !client.IsClosed {
						close(client.Send)
						client.IsClosed = true
					}
					client.Mu.Unlock()
					delete(h.channels[client.Channel], client)
					if len(h.channels[client.Channel]) == 0 {
						delete(h.channels, client.Channel)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish реализует Publisher: сериализует сообщение и рассылает его всем
// подписчикам канала. Ошибки и переполненные клиенты молча пропускаются —
// доставка best-effort.
func (h *Hub) Publish(channel string, eventType string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers, ok := h.channels[channel]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(Message{Event: eventType, Payload: payload, Channel: channel})
	if err != nil {
		log.Printf("Error marshalling message for channel %s: %v", channel, err)
		return
	}

	for client := range subscribers {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("Client's send channel full or closed for channel %s. Skipping.", channel)
		}
		client.Mu.Unlock()
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		// Входящие кадры игнорируются: канал только на чтение для клиента.
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
