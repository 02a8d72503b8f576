package middleware

import (
	"crypto/subtle"
	"net/http"
)

// DoctorAuth admits requests whose Authorization header is exactly "Bearer <key>".
func DoctorAuth(key string) func(http.Handler) http.Handler {
	want := []byte("Bearer " + key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
