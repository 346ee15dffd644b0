package middleware

import (
	"log"
	"net/http"

	"github.com/oggyb/sms-gateway-connector/internal/response"
)

// Recoverer turns a panicking handler into a 500 response.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[API] panic serving %s %s: %v", r.Method, r.URL.Path, rec)
					response.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
