package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deppfellow/go-invoicing/internal/middleware"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
)

// Authenticator signs a login form in. A non-empty message is a failure to
// show the user.
type Authenticator interface {
	Authenticate(ctx context.Context, form url.Values) (*model.User, string, error)
}

type AuthHandler struct {
	Handler
	auth Authenticator
}

func NewAuthHandler(s *server.Server, auth Authenticator) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// LoginRequest is bound but not validated here. The credentials provider
// checks its shape, so malformed input reads as invalid credentials.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (r *LoginRequest) Validate() error {
	return nil
}

func (r *LoginRequest) Values() url.Values {
	return url.Values{
		"email":    {r.Email},
		"password": {r.Password},
	}
}

type LogoutRequest struct{}

func (r *LogoutRequest) Validate() error {
	return nil
}

func (h *AuthHandler) Login() echo.HandlerFunc {
	return HandleAction(h.Handler, func(c echo.Context, req *LoginRequest) (model.ActionState, error) {
		user, message, err := h.auth.Authenticate(c.Request().Context(), req.Values())
		if err != nil {
			return model.ActionState{}, err
		}
		if message != "" {
			return model.Failure(message), nil
		}

		if err := middleware.StartSession(c, h.server.Sessions, user.ID); err != nil {
			return model.ActionState{}, fmt.Errorf("failed to save session: %w", err)
		}

		middleware.GetLogger(c).Info().Str("user_id", user.ID).Msg("user signed in")
		return model.RedirectTo(model.DashboardPath), nil
	}, http.StatusNoContent, http.StatusUnauthorized, &LoginRequest{})
}

func (h *AuthHandler) Logout() echo.HandlerFunc {
	return HandleAction(h.Handler, func(c echo.Context, _ *LogoutRequest) (model.ActionState, error) {
		if err := middleware.EndSession(c, h.server.Sessions); err != nil {
			return model.ActionState{}, fmt.Errorf("failed to clear session: %w", err)
		}
		return model.RedirectTo(model.LoginPath), nil
	}, http.StatusNoContent, http.StatusUnauthorized, &LogoutRequest{})
}
