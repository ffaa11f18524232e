package shop

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookieName = "storecheck_session"

// ensureSession returns the basket session ID for a request, minting a
// cookie when the browser does not carry one yet.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
