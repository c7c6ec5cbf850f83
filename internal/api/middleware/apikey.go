package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/saheminvest/saheminvest-backend/internal/api/response"
)

// APIKeyMiddleware guards mutating admin endpoints. Requests must carry
// the configured key in the X-API-Key header; the comparison is constant
// time. When INTERNAL_API_KEY is unset every request is refused.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
