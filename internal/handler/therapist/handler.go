package therapist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/observability"
	therapistService "github.com/zhouzirui/mindshift/backend/internal/service/therapist"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 治疗师目录的HTTP处理器
type Handler struct {
	directory *therapistService.Directory
}

// New 创建治疗师目录处理器
func New(directory *therapistService.Directory) *Handler {
	return &Handler{directory: directory}
}

// RegisterRoutes 注册治疗师相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/therapists", h.handleList)
	r.Get("/therapists/pins", h.handlePins)
}

// handleList 按关键字过滤后列出已认证的治疗师
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("therapist: list failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load therapists")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

// handlePins 只返回带坐标、可以在地图上标注的治疗师
func (h *Handler) handlePins(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("therapist: pins failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load therapists")
		return
	}
	utils.RespondJSON(w, http.StatusOK, therapistService.Pins(items))
}
