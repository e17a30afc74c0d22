package middleware

import (
	"net/http"
	"strings"
)

// exposedHeaders are readable by browser clients. The assistant stream
// reports its fallback flag in a trailer.
var exposedHeaders = []string{"X-Assistant-Fallback"}

type CORSMiddleware struct {
	origin string
}

// NewCORSMiddleware allows every origin unless one is given
func NewCORSMiddleware(origin ...string) *CORSMiddleware {
	m := &CORSMiddleware{origin: "*"}
	if len(origin) > 0 && origin[0] != "" {
		m.origin = origin[0]
	}
	return m
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", m.origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RoleHeader)
		h.Set("Access-Control-Expose-Headers", strings.Join(exposedHeaders, ", "))

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
