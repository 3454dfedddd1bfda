package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/zhouzirui/farmstead/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler WebSocket实时会话处理器
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

// QuickActionMessage 快捷操作消息
type QuickActionMessage struct {
	Category string `json:"category"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// conn serialises writes; the ping loop and the read loop share it.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(msg)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()
	c := &conn{ws: ws}

	slog.Info("websocket connected", "session", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, c)

	messages, _ := h.chatSvc.LoadTranscript(ctx, sessionID)
	if err := h.send(c, sessionID, "connected", map[string]any{
		"messages":     messages,
		"quickActions": h.chatSvc.QuickActions(),
	}); err != nil {
		return
	}

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "session", sessionID, "error", err)
			}
			return
		}

		ws.SetReadDeadline(time.Now().Add(readTimeout))

		var err error
		if msg.SessionID != "" && msg.SessionID != sessionID {
			err = h.sendError(c, sessionID, "session mismatch")
		} else {
			err = h.handleMessage(ctx, c, sessionID, &msg)
		}
		// 写失败说明连接已不可用，结束读循环
		if err != nil {
			return
		}
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, c *conn, sessionID string, msg *inboundMessage) error {
	switch msg.Type {
	case "text":
		var text TextMessage
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			return h.sendError(c, sessionID, "invalid text payload")
		}
		return h.respond(c, sessionID, func() (chatservice.Exchange, error) {
			return h.chatSvc.SubmitText(ctx, sessionID, text.Text)
		})
	case "quick_action":
		var action QuickActionMessage
		if err := json.Unmarshal(msg.Data, &action); err != nil {
			return h.sendError(c, sessionID, "invalid quick action payload")
		}
		return h.respond(c, sessionID, func() (chatservice.Exchange, error) {
			return h.chatSvc.SubmitQuickAction(ctx, sessionID, action.Category)
		})
	case "reset":
		messages, err := h.chatSvc.Reset(ctx, sessionID)
		if err != nil {
			return h.sendError(c, sessionID, err.Error())
		}
		return h.send(c, sessionID, "reset", messages)
	default:
		return h.sendError(c, sessionID, "unsupported message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) respond(c *conn, sessionID string, submit func() (chatservice.Exchange, error)) error {
	if err := h.send(c, sessionID, "typing", nil); err != nil {
		return err
	}

	exchange, err := submit()
	if err != nil {
		return h.sendError(c, sessionID, err.Error())
	}

	return h.send(c, sessionID, "message", exchange)
}

func (h *WebSocketHandler) sendError(c *conn, sessionID, message string) error {
	return h.send(c, sessionID, "error", map[string]string{"error": message})
}

// send writes one event and logs a failed write.
func (h *WebSocketHandler) send(c *conn, sessionID, eventType string, data any) error {
	err := c.send(outgoingMessage{Type: eventType, SessionID: sessionID, Data: data})
	if err != nil {
		slog.Warn("websocket send failed", "session", sessionID, "type", eventType, "error", err)
	}
	return err
}

func (h *WebSocketHandler) pingLoop(ctx context.Context, c *conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
