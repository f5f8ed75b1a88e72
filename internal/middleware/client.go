package middleware

import (
	"net"
	"net/http"
)

// ClientIP 返回请求来源的主机地址，去掉临时端口；RemoteAddr 不含端口时原样返回。
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
