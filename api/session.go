package api

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// sessionName is the admin session cookie.
const sessionName = "portfolio_admin"

// Session value keys.
const (
	sessionKeyLoggedIn = "admin_logged_in"
	sessionKeyUsername = "admin_username"
)

// newSessionStore builds the cookie store the admin session rides on. The
// secret can be any passphrase; it is SHA-256 hashed to derive a consistent
// 32-byte signing key.
func newSessionStore(secret string) *sessions.CookieStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // one day
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// isAdminSession reports whether the request carries a valid admin session.
func isAdminSession(store sessions.Store, r *http.Request) bool {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return false
	}
	loggedIn, ok := session.Values[sessionKeyLoggedIn].(bool)
	return ok && loggedIn
}
