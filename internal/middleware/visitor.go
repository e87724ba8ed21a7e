package middleware

import (
	"net"
	"net/http"
	"strings"

	"makwell-storefront/internal/logger"
)

// VisitorHeader carries the storefront's per-browser id. It scopes the cart
// and preferences the way a browser's local storage would.
const VisitorHeader = "X-Visitor-ID"

const maxVisitorIDLen = 64

// VisitorMiddleware tags the request context with a visitor identity:
// the visitor header when present, else the device header, else the client ip.
func VisitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithVisitor(r.Context(), VisitorIdentity(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func VisitorIdentity(r *http.Request) string {
	if id := sanitizeVisitorID(r.Header.Get(VisitorHeader)); id != "" {
		return "visitor:" + id
	}
	if id := sanitizeVisitorID(r.Header.Get("X-Device-ID")); id != "" {
		return "device:" + id
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return ip
}

// sanitizeVisitorID keeps ids usable as storage key segments.
func sanitizeVisitorID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxVisitorIDLen {
		return ""
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return id
}
