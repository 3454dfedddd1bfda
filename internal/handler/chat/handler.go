package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
	chatService "github.com/zhouzirui/farmstead/backend/internal/service/chat"
	"github.com/zhouzirui/farmstead/backend/pkg/utils"
)

// Handler 客服会话的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建会话处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/quick-actions", h.handleListQuickActions)
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(r chi.Router) {
		r.Delete("/", h.handleDeleteSession)
		r.Get("/messages", h.handleTranscript)
		r.Post("/messages", h.handleSubmitText)
		r.Post("/quick-actions/{key}", h.handleQuickAction)
		r.Post("/reset", h.handleReset)
	})
}

type transcriptResponse struct {
	Session  *chat.Session          `json:"session,omitempty"`
	Messages []chat.Message         `json:"messages"`
	Context  intent.DialogueContext `json:"context"`
}

func (h *Handler) handleListQuickActions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.chatSvc.QuickActions())
}

// handleCreateSession 创建会话并返回初始问候
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages, err := h.chatSvc.LoadTranscript(r.Context(), session.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, transcriptResponse{
		Session:  &session,
		Messages: messages,
		Context:  intent.Cleared(),
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, dialogue, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, transcriptResponse{Messages: messages, Context: dialogue})
}

// handleSubmitText 处理用户输入的文本
func (h *Handler) handleSubmitText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.chatSvc.SubmitText(r.Context(), chi.URLParam(r, "sessionID"), payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	exchange, err := h.chatSvc.SubmitQuickAction(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, transcriptResponse{Messages: messages, Context: intent.Cleared()})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusFor maps assistant service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, chatService.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, chatService.ErrSessionNotFound), errors.Is(err, chatService.ErrUnknownQuickAction):
		return http.StatusNotFound
	case errors.Is(err, chatService.ErrBusy), errors.Is(err, chatService.ErrConversationReset):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	utils.RespondError(w, StatusFor(err), err.Error())
}
