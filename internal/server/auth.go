package server

import (
	"errors"
	"net/http"
)

var errNoSession = errors.New("no valid session")

const authCookieName = "author_session"

// userFromRequest reads the author_session cookie and resolves the author.
func userFromRequest(r *http.Request, store Store) (userSession, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil || cookie.Value == "" {
		return userSession{}, errNoSession
	}
	return store.UserFromSession(r.Context(), cookie.Value)
}
