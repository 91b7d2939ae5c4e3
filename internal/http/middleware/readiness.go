package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/straye-as/offer-tracker/internal/domain"
)

// ReadinessChecker reports whether the application finished loading
type ReadinessChecker interface {
	Ready() bool
}

// RequireReady answers 503 until the checker is ready
func RequireReady(checker ReadinessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.Ready() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(domain.APIError{
					Type:   domain.ErrorTypeUnavailable,
					Title:  http.StatusText(http.StatusServiceUnavailable),
					Status: http.StatusServiceUnavailable,
					Detail: "Data is still loading",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
