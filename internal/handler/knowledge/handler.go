package knowledge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	"github.com/zhouzirui/farmstead/backend/pkg/utils"
)

// Handler 知识库的HTTP处理器
type Handler struct {
	store knowledge.Store
}

// New 创建知识库处理器
func New(store knowledge.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册知识库相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.handleListCategories)
	r.Get("/categories/{key}", h.handleGetCategory)
}

// handleListCategories 列出所有话题分类
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.store.FindByKey(chi.URLParam(r, "key"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "category not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, category)
}
