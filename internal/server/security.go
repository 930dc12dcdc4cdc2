package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the protections applied to every HTTP request:
// response hardening headers, CORS policy and the input size limit for
// submitted expressions.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists origins permitted to call the API. The single
	// entry "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised to CORS clients.
	AllowedMethods []string
	// MaxExprLen bounds the length in bytes of a submitted expression.
	// Longer inputs are rejected before parsing.
	MaxExprLen int
}

// DefaultSecurityConfig returns the standard configuration: permissive
// CORS for the read-only evaluation API and a generous expression limit.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxExprLen:     1024,
	}
}

// SecurityMiddleware wraps next with response hardening headers and, when
// enabled, CORS handling. Preflight OPTIONS requests are answered here and
// never reach next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if config.EnableCORS {
			handleCORS(w, r, config)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies defensive headers to every response.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// handleCORS writes the CORS response headers when the request origin is
// allowed. A wildcard configuration matches requests without an Origin
// header as well, so non-browser clients see the same responses.
func handleCORS(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := r.Header.Get("Origin")

	allowed := ""
	for _, candidate := range config.AllowedOrigins {
		if candidate == "*" {
			allowed = "*"
			break
		}
		if candidate == origin && origin != "" {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowed)
	h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
}
