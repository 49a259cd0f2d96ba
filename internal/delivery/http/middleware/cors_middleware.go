package middleware

import (
	"net/http"
	"slices"
)

// CORSMiddleware answers preflight requests and allows the configured origins.
// An allowed origin of "*" allows any origin.
type CORSMiddleware struct {
	allowedOrigins []string
}

func NewCORSMiddleware(allowedOrigins ...string) *CORSMiddleware {
	return &CORSMiddleware{allowedOrigins: allowedOrigins}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin := m.allowOrigin(req.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		}
		w.Header().Add("Vary", "Origin")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (m *CORSMiddleware) allowOrigin(origin string) string {
	if slices.Contains(m.allowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(m.allowedOrigins, origin) {
		return origin
	}
	return ""
}
