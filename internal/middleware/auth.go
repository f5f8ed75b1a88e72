package middleware

import (
	"net/http"
	"strings"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// TokenVerifier 校验 bearer token 并返回用户 ID。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth 解析 Authorization 头：没有 token 视为匿名访问，token 无效返回 401。
// WebSocket 客户端无法设置请求头，因此也接受 access_token 查询参数。
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				observability.LoggerFromContext(r.Context()).Info("auth: rejected token", "error", err)
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}
