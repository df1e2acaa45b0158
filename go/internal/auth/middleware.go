package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// RequireSession lets requests through only while someone is signed in.
// Browser navigations are redirected to loginPath; RPC calls get a Connect
// unauthenticated error. Paths under any of the open prefixes skip the check.
func RequireSession(session *Session, loginPath string, open ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == loginPath || hasAnyPrefix(r.URL.Path, open) {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := session.Identity(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "unauthenticated",
				"message": "sign in required",
			})
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// LogoutHandler signs out and sends the browser to loginPath. It takes l the
// same way RPC handlers do, since sign-out reloads state.
func LogoutHandler(gate *Gate, l sync.Locker, loginPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.Lock()
		gate.SignOut(r.Context())
		l.Unlock()
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	})
}
