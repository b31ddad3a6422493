package app

import (
	"net/http"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// formValue returns a posted form field as sent. Activity names are server
// keys and must not be altered.
func formValue(r *http.Request, key string) string {
	return r.PostFormValue(key)
}
