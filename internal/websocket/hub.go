package websocket

import (
	"sync"

	"github.com/TemiKayas/411HW3/pkg/logger"
)

// Hub WebSocket 연결 관리 및 브로드캐스트
type Hub struct {
	// 연결별 클라이언트 저장 (clientID -> *Client)
	clients map[string]*Client
	mu      sync.RWMutex

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
}

// Message WebSocket 메시지
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run Hub 실행
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient 클라이언트 등록
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.id] = client

	logger.Info("WebSocket client registered",
		"clientId", client.id,
		"totalClients", len(h.clients),
	)
}

// unregisterClient 클라이언트 해제
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client.id]; exists {
		delete(h.clients, client.id)
		close(client.send)

		logger.Info("WebSocket client unregistered",
			"clientId", client.id,
			"totalClients", len(h.clients),
		)
	}
}

// broadcastMessage 연결된 모든 클라이언트에게 전송
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.send <- message:
		default:
			// 채널이 가득 찬 경우 연결 해제
			logger.Warn("Client send channel full, unregistering",
				"clientId", client.id,
			)
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// Broadcast 모든 클라이언트에게 메시지 전송
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	h.broadcast <- &Message{
		Type:    msgType,
		Payload: payload,
	}
}
