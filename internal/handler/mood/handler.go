package mood

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/observability"
	moodService "github.com/zhouzirui/mindshift/backend/internal/service/mood"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 心情记录的HTTP处理器
type Handler struct {
	moodSvc *moodService.Service
}

// New 创建心情记录处理器
func New(moodSvc *moodService.Service) *Handler {
	return &Handler{moodSvc: moodSvc}
}

// RegisterRoutes 注册心情相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood/options", h.handleOptions)
	r.Get("/mood", h.handleOverview)
	r.Post("/mood", h.handleLog)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.moodSvc.Options())
}

// handleOverview 返回历史记录、趋势与提醒
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	overview, err := h.moodSvc.Overview(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, overview)
}

// handleLog 记录今天的心情，同一天重复提交会覆盖
func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	var payload moodService.LogInput
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.moodSvc.Log(r.Context(), payload)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	utils.RespondJSON(w, status, result)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, moodService.ErrMoodRequired), errors.Is(err, moodService.ErrInvalidMood):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, moodService.ErrSignInRequired):
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("mood: request failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "could not save your mood, please try again")
	}
}
