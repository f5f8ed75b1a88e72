package breathing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	model "github.com/zhouzirui/mindshift/backend/internal/model/breathing"
	service "github.com/zhouzirui/mindshift/backend/internal/service/breathing"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 呼吸练习的 HTTP / WebSocket 处理器
type Handler struct {
	exercises []model.Exercise
	cfg       service.Config
	upgrader  websocket.Upgrader
}

// New 创建呼吸练习处理器
func New(exercises []model.Exercise, cfg service.Config) *Handler {
	return &Handler{
		exercises: append([]model.Exercise(nil), exercises...),
		cfg:       cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册呼吸练习相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/breathing/exercises", h.handleListExercises)
	r.Get("/breathing/ws", h.handleWebSocket)
}

// handleListExercises 列出所有练习
func (h *Handler) handleListExercises(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.exercises)
}
