package middleware

import (
	"net/http"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	// SessionName is the login cookie's name.
	SessionName = "invoicing-session"

	sessionUserIDKey = "user_id"
)

// AuthMiddleware guards routes behind the login session.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{server: s}
}

// RequireAuth lets requests with a signed-in session through and sends
// everyone else to the login page with a 303.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := SessionUserID(c, auth.server.Sessions)
		if err != nil {
			// A cookie that no longer decodes (rotated secret) counts as signed out.
			GetLogger(c).Warn().Err(err).Msg("could not decode session cookie")
		}

		if userID == "" {
			GetLogger(c).Info().Msg("no session, redirecting to login")
			return c.Redirect(http.StatusSeeOther, model.LoginPath)
		}

		SetUserID(c, userID)
		return next(c)
	}
}

// SessionUserID reads the signed-in user's id from the session cookie.
func SessionUserID(c echo.Context, store sessions.Store) (string, error) {
	session, err := store.Get(c.Request(), SessionName)
	if err != nil {
		return "", err
	}
	userID, _ := session.Values[sessionUserIDKey].(string)
	return userID, nil
}

// StartSession signs userID in by writing a fresh session cookie.
func StartSession(c echo.Context, store sessions.Store, userID string) error {
	// An undecodable old cookie still yields a usable new session.
	session, _ := store.Get(c.Request(), SessionName)
	session.Values[sessionUserIDKey] = userID
	return session.Save(c.Request(), c.Response())
}

// EndSession expires the session cookie.
func EndSession(c echo.Context, store sessions.Store) error {
	session, _ := store.Get(c.Request(), SessionName)
	delete(session.Values, sessionUserIDKey)
	session.Options.MaxAge = -1
	return session.Save(c.Request(), c.Response())
}
