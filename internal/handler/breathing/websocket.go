package breathing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhouzirui/mindshift/backend/internal/observability"
	service "github.com/zhouzirui/mindshift/backend/internal/service/breathing"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// StartMessage 开始练习的请求
type StartMessage struct {
	Exercise int `json:"exercise"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// wsWriter 串行化写操作：序列器回调、ping 与请求处理会并发写同一连接。
type wsWriter struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *slog.Logger
}

func (w *wsWriter) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.conn.WriteJSON(v)
}

func (w *wsWriter) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (w *wsWriter) send(typ string, data any) {
	msg := outgoingMessage{Type: typ, Data: data, Timestamp: time.Now().Unix()}
	if err := w.writeJSON(msg); err != nil {
		w.logger.Debug("breathing ws: write failed", "type", typ, "error", err)
	}
}

// handleWebSocket 处理一次呼吸练习连接；连接断开时静默结束正在进行的练习。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("breathing ws: upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	out := &wsWriter{conn: conn, logger: logger}
	seq := service.NewSequencer(h.exercises, h.cfg, func(ev service.Event) {
		out.send("breathing", ev)
	})
	defer seq.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go pingLoop(ctx, out)

	out.send("connected", map[string]any{"exercises": h.exercises})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Info("breathing ws: read error", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		h.handleMessage(seq, out, &msg)
	}
}

func (h *Handler) handleMessage(seq *service.Sequencer, out *wsWriter, msg *inboundMessage) {
	switch msg.Type {
	case "start":
		var start StartMessage
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &start); err != nil {
				out.send("error", map[string]string{"message": "invalid start payload"})
				return
			}
		}
		if err := seq.Start(start.Exercise); err != nil {
			if errors.Is(err, service.ErrUnknownExercise) {
				out.send("error", map[string]string{"message": "unknown exercise"})
				return
			}
			out.send("error", map[string]string{"message": "could not start exercise"})
		}
	case "stop":
		seq.Stop()
	case "status":
		ex, step, ok := seq.Current()
		status := map[string]any{"state": seq.State()}
		if ok {
			status["exercise"] = ex.Name
			status["step"] = step
			status["text"] = ex.Steps[step]
		}
		out.send("status", status)
	default:
		out.send("error", map[string]string{"message": "unsupported message type"})
	}
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, out *wsWriter) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := out.ping(); err != nil {
				return
			}
		}
	}
}
