package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON 发送JSON响应
// 先完成编码再写状态码，编码失败时返回500而不是半截响应。会话数据不允许缓存。
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "failed to encode response"})
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("failed to write response", "status", status, "error", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}
