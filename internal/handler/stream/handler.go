package stream

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatHandler "github.com/zhouzirui/mindshift/backend/internal/handler/chat"
	"github.com/zhouzirui/mindshift/backend/internal/middleware"
	"github.com/zhouzirui/mindshift/backend/internal/model/chat"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
	chatService "github.com/zhouzirui/mindshift/backend/internal/service/chat"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// Handler 通过 Server-Sent Events 推送打字完成后的回复
type Handler struct {
	chatSvc *chatService.Service
	limiter ratelimit.Limiter
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, limiter ratelimit.Limiter) *Handler {
	return &Handler{chatSvc: chatSvc, limiter: limiter}
}

// RegisterRoutes 注册流式路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RateLimit(h.limiter)).Get("/chat/sessions/{sessionID}/stream", h.handleStream)
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	SessionID string        `json:"sessionId"`
	Message   *chat.Message `json:"message,omitempty"`
	Finished  bool          `json:"finished,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// handleStream 发送用户消息，依次推送 start / typing / message / end 事件。
// 客户端断开时回复仍会写入会话记录。
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")
	text := r.URL.Query().Get("message")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	replies := make(chan chat.Message, 1)
	userMsg, err := h.chatSvc.SendMessage(ctx, sessionID, text, func(msg chat.Message) {
		replies <- msg
	})
	if err != nil {
		chatHandler.RespondServiceError(w, r, err)
		return
	}

	logger := observability.LoggerFromContext(ctx).With("session_id", sessionID)
	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	send := func(event string, payload StreamResponse) bool {
		if err := utils.SendSSEEvent(w, flusher, event, payload); err != nil {
			logger.Debug("stream: write failed", "event", event, "error", err)
			return false
		}
		return true
	}

	if !send("start", StreamResponse{SessionID: sessionID, Message: &userMsg}) {
		return
	}
	if !send("typing", StreamResponse{SessionID: sessionID}) {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stream: client disconnected before reply")
			return
		case <-heartbeat.C:
			if !send("typing", StreamResponse{SessionID: sessionID}) {
				return
			}
		case reply := <-replies:
			if send("message", StreamResponse{SessionID: sessionID, Message: &reply}) {
				send("end", StreamResponse{SessionID: sessionID, Finished: true})
			}
			return
		}
	}
}
