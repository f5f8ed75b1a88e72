package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Pinger 由需要探活的存储实现
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler 健康检查处理器
type Handler struct {
	db Pinger
}

// New 创建健康检查处理器，db 可以为 nil（内存存储模式）
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes 注册健康检查路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	storage := "memory"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			observability.LoggerFromContext(r.Context()).Warn("health: database ping failed", "error", err)
			utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"storage": "postgres",
			})
			return
		}
		storage = "postgres"
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": storage,
	})
}
