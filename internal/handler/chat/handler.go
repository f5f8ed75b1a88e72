package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/middleware"
	"github.com/zhouzirui/mindshift/backend/internal/model/chat"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
	chatService "github.com/zhouzirui/mindshift/backend/internal/service/chat"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	limiter ratelimit.Limiter
}

// New 创建聊天处理器；limiter 可为 nil。
func New(chatSvc *chatService.Service, limiter ratelimit.Limiter) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		limiter: limiter,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/sessions", h.handleCreateSession)
	r.Get("/chat/sessions/{sessionID}/messages", h.handleTranscript)
	r.With(middleware.RateLimit(h.limiter)).Post("/chat/sessions/{sessionID}/messages", h.handleSendMessage)
	r.Delete("/chat/sessions/{sessionID}", h.handleCloseSession)
	r.Get("/chat/history", h.handleHistory)
}

type transcriptResponse struct {
	Session  chat.Session   `json:"session"`
	Messages []chat.Message `json:"messages"`
	Typing   bool           `json:"typing"`
}

// handleCreateSession 创建会话，返回包含欢迎语的初始记录
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	messages, err := h.chatSvc.Transcript(r.Context(), session.ID)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, transcriptResponse{Session: session, Messages: messages})
}

// handleTranscript 返回会话的完整消息记录
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	messages, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	typing, _ := h.chatSvc.Typing(r.Context(), sessionID)
	utils.RespondJSON(w, http.StatusOK, transcriptResponse{Session: session, Messages: messages, Typing: typing})
}

// handleSendMessage 保存用户消息并开始"输入"回复；回复可通过记录或 SSE 获取
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), chi.URLParam(r, "sessionID"), payload.Text, nil)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, map[string]any{"message": msg, "typing": true})
}

// handleCloseSession 关闭会话并取消未完成的回复
func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		RespondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHistory 返回已登录用户保存的聊天记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.History(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// RespondServiceError 将聊天服务错误映射为 HTTP 响应
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, chatService.ErrEmptyMessage.Error())
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, chatService.ErrSessionNotFound.Error())
	case errors.Is(err, chatService.ErrReplyPending):
		utils.RespondError(w, http.StatusConflict, chatService.ErrReplyPending.Error())
	case errors.Is(err, chatService.ErrSignInRequired):
		utils.RespondError(w, http.StatusUnauthorized, chatService.ErrSignInRequired.Error())
	case errors.Is(err, chatService.ErrStoreUnavailable):
		utils.RespondError(w, http.StatusServiceUnavailable, chatService.ErrStoreUnavailable.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("chat: request failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
