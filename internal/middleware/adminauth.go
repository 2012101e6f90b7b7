package middleware

import (
	"crypto/subtle"
	"net/http"

	"prizehouse-api/pkg/apierror"
)

// NewAdminAuth gates the teacher workbench behind a single shared
// secret, presented in the X-Admin-Key header. An absent header means
// "not admin" and gets a bare 401 with no further detail; a present but
// wrong key is called out explicitly. The two cases are distinct on
// purpose: walking away from the password prompt is not an error.
func NewAdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				writeError(w, apierror.Unauthorized(""))
				return
			}

			if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				writeError(w, apierror.Unauthorized("Invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}
