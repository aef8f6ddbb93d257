package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware resolves bearer credentials on incoming requests. A request
// without an Authorization header proceeds unauthenticated and handlers that
// need an identity reject it themselves; a header that fails verification is
// rejected here with 401 and never treated as anonymous.
type Middleware struct {
	Config Config
}

// NewMiddleware constructs a Middleware.
func NewMiddleware(cfg Config) Middleware {
	return Middleware{Config: cfg}
}

// Wrap attaches credential resolution to an http.Handler.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			unauthorized(w, "malformed authorization header")
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := Parse(token, m.Config)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"type":   "unauthorized",
		"detail": detail,
	})
}
