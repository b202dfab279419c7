package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

// CSRF protege os formulários HTML. A API JSON em /api/ fica de fora.
func CSRF(key []byte, secure bool, port string) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{"localhost:" + port, "127.0.0.1:" + port, "localhost", "127.0.0.1"}),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			if strings.HasPrefix(r.URL.Path, "/api/") {
				r = csrf.UnsafeSkipCheck(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
