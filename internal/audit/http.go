package audit

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the originating address for an audit entry. The
// service sits behind a single reverse proxy, so the first X-Forwarded-For
// hop is trusted; otherwise the socket address is used as-is.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
