package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const clientIPKey = "client_ip"

// Proxy headers consulted in order; the first valid address wins.
var forwardedHeaders = []string{
	"X-Forwarded-For", // first hop only
	"X-Real-Ip",
	"CF-Connecting-IP",
	"X-Forwarded",
}

// AuditMiddleware resolves the caller's IP once per request for audit entries.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPKey, ClientIP(c.Request))
		c.Next()
	}
}

// ClientIP returns the address from proxy headers, falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	for _, h := range forwardedHeaders {
		v := r.Header.Get(h)
		if h == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		v = strings.TrimSpace(v)
		if net.ParseIP(v) != nil {
			return v
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// GetIPFromContext returns the IP stored by AuditMiddleware, resolving it
// directly when the middleware did not run.
func GetIPFromContext(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return ClientIP(c.Request)
}
