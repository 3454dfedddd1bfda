package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/farmstead/backend/internal/handler/chat"
	"github.com/zhouzirui/farmstead/backend/internal/handler/knowledge"
	"github.com/zhouzirui/farmstead/backend/internal/handler/live"
	"github.com/zhouzirui/farmstead/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/farmstead/backend/internal/middleware"
	knowledgeModel "github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	chatService "github.com/zhouzirui/farmstead/backend/internal/service/chat"
	"github.com/zhouzirui/farmstead/backend/pkg/utils"
)

// Options toggles optional endpoints.
type Options struct {
	Metrics bool
}

// NewRouter wires HTTP routes to core services.
func NewRouter(store knowledgeModel.Store, chatSvc *chatService.Service, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	knowledgeHandler := knowledge.New(store)
	chatHandler := chat.New(chatSvc)
	streamHandler := stream.New(chatSvc)
	wsHandler := live.NewWebSocketHandler(chatSvc)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		knowledgeHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)

		// SSE variant of message submission for widgets without WebSocket support
		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			req := stream.Request{
				Text:        r.URL.Query().Get("message"),
				QuickAction: r.URL.Query().Get("action"),
			}

			if strings.TrimSpace(req.Text) == "" && req.QuickAction == "" {
				utils.RespondError(w, http.StatusBadRequest, "message or action query parameter is required")
				return
			}

			// errors after the stream is open are reported as SSE error events
			_ = streamHandler.HandleStreamRequest(r.Context(), w, sessionID, req)
		})
	})

	return r
}
