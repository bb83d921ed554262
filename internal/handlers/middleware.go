package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/adyen/swaglabs/internal/services"
)

// SessionCookieName is the cookie carrying the session id
const SessionCookieName = "swag-session"

type sessionKey struct{}

// RequireSession only lets requests with a live session through. Others
// are sent to the login page, which explains what was denied.
func RequireSession(store services.SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			http.Redirect(w, r, "/?denied="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session RequireSession attached
func SessionFromContext(ctx context.Context) (*services.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*services.Session)
	return session, ok
}

func sessionFromRequest(store services.SessionStore, r *http.Request) (*services.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, services.ErrSessionNotFound
	}
	return store.Get(cookie.Value)
}

// mustSession is used by handlers mounted behind RequireSession
func mustSession(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
	return session, ok
}
