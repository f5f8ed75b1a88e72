package focus

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/middleware"
	focusService "github.com/zhouzirui/mindshift/backend/internal/service/focus"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 专注计时器的HTTP处理器
type Handler struct {
	focusSvc *focusService.Service
}

// New 创建专注计时器处理器
func New(focusSvc *focusService.Service) *Handler {
	return &Handler{focusSvc: focusSvc}
}

// RegisterRoutes 注册计时器相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/focus", h.handleState)
	r.Post("/focus/start", h.handleStart)
	r.Post("/focus/pause", h.handlePause)
	r.Post("/focus/reset", h.handleReset)
	r.Post("/focus/switch", h.handleSwitch)
	r.Put("/focus/settings", h.handleSettings)
}

// timerKey 已登录用户按用户 ID，匿名访客按 X-Client-ID（缺省时按去掉端口的远端地址）区分计时器。
func timerKey(r *http.Request) string {
	if userID, ok := identity.UserIDFromContext(r.Context()); ok {
		return "user:" + userID
	}
	if clientID := strings.TrimSpace(r.Header.Get("X-Client-ID")); clientID != "" {
		return "client:" + clientID
	}
	return "ip:" + middleware.ClientIP(r)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.focusSvc.State(timerKey(r)))
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.focusSvc.Start(timerKey(r)))
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.focusSvc.Pause(timerKey(r)))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.focusSvc.Reset(timerKey(r)))
}

func (h *Handler) handleSwitch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mode focusService.Mode `json:"mode"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := h.focusSvc.Switch(timerKey(r), payload.Mode)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	var settings focusService.Settings
	if err := utils.DecodeJSON(r, &settings); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := h.focusSvc.UpdateSettings(timerKey(r), settings)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, focusService.ErrInvalidMode):
		utils.RespondError(w, http.StatusBadRequest, focusService.ErrInvalidMode.Error())
	case errors.Is(err, focusService.ErrInvalidDuration):
		utils.RespondError(w, http.StatusBadRequest, focusService.ErrInvalidDuration.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, "timer unavailable")
	}
}
