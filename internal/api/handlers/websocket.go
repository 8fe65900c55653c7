package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/TemiKayas/411HW3/internal/websocket"
)

// WebSocketHandler WebSocket 연결 처리
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler WebSocketHandler 생성
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// HandleWebSocket 전투 결과 실시간 피드 엔드포인트
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	websocket.ServeWs(h.hub, c.Writer, c.Request)
}
