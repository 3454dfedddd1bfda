package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	chatservice "github.com/zhouzirui/farmstead/backend/internal/service/chat"
)

type received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	store := knowledge.NewMemoryStore(knowledge.Seed())
	chatSvc := chatservice.NewService(intent.NewResolver(store), intent.NewDispatcher(store), chatservice.Config{
		Delay: chatservice.NoDelay{},
	})
	session, err := chatSvc.CreateSession(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	NewWebSocketHandler(chatSvc).RegisterWebSocketRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, session.ID
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func read(t *testing.T, ws *websocket.Conn) received {
	t.Helper()
	var msg received
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func TestWebSocketConversation(t *testing.T) {
	srv, sessionID := setup(t)
	ws := dial(t, srv, sessionID)

	assert.Equal(t, "connected", read(t, ws).Type)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "quick_action", "data": map[string]string{"category": "ordering"}}))
	assert.Equal(t, "typing", read(t, ws).Type)
	msg := read(t, ws)
	require.Equal(t, "message", msg.Type)

	var ex chatservice.Exchange
	require.NoError(t, json.Unmarshal(msg.Data, &ex))
	assert.True(t, ex.Context.AwaitingSelection)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "1"}}))
	assert.Equal(t, "typing", read(t, ws).Type)
	msg = read(t, ws)
	require.NoError(t, json.Unmarshal(msg.Data, &ex))
	assert.Contains(t, ex.Bot.Text, "Checkout")

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "reset"}))
	msg = read(t, ws)
	assert.Equal(t, "reset", msg.Type)
}

func TestWebSocketRejectsUnknownType(t *testing.T) {
	srv, sessionID := setup(t)
	ws := dial(t, srv, sessionID)
	read(t, ws)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "audio"}))
	assert.Equal(t, "error", read(t, ws).Type)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "text", "sessionId": "other", "data": map[string]string{"text": "hi"}}))
	assert.Equal(t, "error", read(t, ws).Type)
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv, _ := setup(t)

	resp, err := http.Get(srv.URL + "/ws/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleMessageReportsWriteFailure(t *testing.T) {
	store := knowledge.NewMemoryStore(knowledge.Seed())
	chatSvc := chatservice.NewService(intent.NewResolver(store), intent.NewDispatcher(store), chatservice.Config{
		Delay: chatservice.NoDelay{},
	})
	session, err := chatSvc.CreateSession(context.Background())
	require.NoError(t, err)
	h := NewWebSocketHandler(chatSvc)

	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	serverWS := <-accepted
	require.NoError(t, serverWS.Close())
	c := &conn{ws: serverWS}

	cases := []inboundMessage{
		{Type: "reset"},
		{Type: "text", Data: json.RawMessage(`{"text":"hello"}`)},
		{Type: "unknown"},
	}
	for _, msg := range cases {
		assert.Error(t, h.handleMessage(context.Background(), c, session.ID, &msg), msg.Type)
	}

	// typing failed before the submit, so nothing was appended
	messages, err := chatSvc.LoadTranscript(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
