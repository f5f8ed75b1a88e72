package middleware

import (
	"net/http"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// RateLimit 按用户（匿名时按客户端 IP）限流；limiter 为 nil 时不做限制。
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + ClientIP(r)
			if userID, ok := identity.UserIDFromContext(r.Context()); ok {
				key = "user:" + userID
			}
			if !limiter.Allow(r.Context(), key) {
				w.Header().Set("Retry-After", "60")
				utils.RespondError(w, http.StatusTooManyRequests, "you're sending messages too quickly, please slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
