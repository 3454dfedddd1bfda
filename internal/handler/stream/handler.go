package stream

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
	chatService "github.com/zhouzirui/farmstead/backend/internal/service/chat"
	"github.com/zhouzirui/farmstead/backend/pkg/utils"
)

// Handler delivers assistant replies via Server-Sent Events so widgets can
// show a typing indicator while the reply is prepared.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a new stream handler
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event     string        `json:"event"`
	SessionID string        `json:"sessionId,omitempty"`
	Message   *chat.Message `json:"message,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Request is one streamed submission: either free text or a quick action.
type Request struct {
	Text        string
	QuickAction string
}

// HandleStreamRequest runs one submission and streams typing, user, bot and
// end events for it. It stops at the first failed write.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID string, req Request) error {
	if _, ok := w.(http.Flusher); !ok {
		return utils.ErrStreamingUnsupported
	}

	if _, err := h.chatSvc.GetSession(ctx, sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return nil
	}

	events, err := utils.OpenEventStream(w)
	if err != nil {
		return err
	}

	if err := events.Send("typing", StreamResponse{Event: "typing", SessionID: sessionID}); err != nil {
		return h.abort(sessionID, err)
	}

	var exchange chatService.Exchange
	if req.QuickAction != "" {
		exchange, err = h.chatSvc.SubmitQuickAction(ctx, sessionID, req.QuickAction)
	} else {
		exchange, err = h.chatSvc.SubmitText(ctx, sessionID, req.Text)
	}
	if err != nil {
		if sendErr := events.Send("error", StreamResponse{Event: "error", SessionID: sessionID, Error: err.Error()}); sendErr != nil {
			h.abort(sessionID, sendErr)
		}
		return err
	}

	for _, ev := range []StreamResponse{
		{Event: "user", SessionID: sessionID, Message: &exchange.User},
		{Event: "bot", SessionID: sessionID, Message: &exchange.Bot},
		{Event: "end", SessionID: sessionID, Finished: true},
	} {
		if err := events.Send(ev.Event, ev); err != nil {
			return h.abort(sessionID, err)
		}
	}

	slog.Debug("stream completed", "session", sessionID, "options", len(exchange.Bot.Options))
	return nil
}

func (h *Handler) abort(sessionID string, err error) error {
	slog.Warn("stream write failed", "session", sessionID, "error", err)
	return err
}
