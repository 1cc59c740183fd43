package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/delivery/http/response"
	"pgbee/internal/domain/constants"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const refreshCookieMaxAge = 24 * time.Hour

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
	Logger *slog.Logger
}

// AuthHandler serves signup, login, token refresh, logout and Google sign-in.
type AuthHandler struct {
	authUC       usecase.AuthUsecase
	cookieSecure bool
	logger       *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	secure := true
	if params.Config != nil && params.Config.Auth != nil {
		secure = params.Config.Auth.CookieSecure
	}

	return &AuthHandler{
		authUC:       params.AuthUC,
		cookieSecure: secure,
		logger:       params.Logger,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	PhoneNo  string `json:"phoneNo" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		PhoneNo:  req.PhoneNo,
		Role:     req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "User created successfully",
		echo.Map{"newUser": toUserResponse(user)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.refreshCookie(output.Tokens.RefreshToken, http.SameSiteStrictMode, h.cookieSecure))

	return response.Success(c, http.StatusOK, "User logged in successfully",
		echo.Map{"accessToken": output.Tokens.AccessToken})
}

// RefreshToken rotates the refresh session. The token is read from the body,
// then the jwt cookie, then the Authorization header.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	token := h.presentedRefreshToken(c)
	if token == "" {
		return domainerrors.ErrRefreshTokenInvalid
	}

	output, err := h.authUC.RefreshToken(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.refreshCookie(output.Tokens.RefreshToken, http.SameSiteStrictMode, h.cookieSecure))

	return response.Success(c, http.StatusOK, "Token refreshed successfully", echo.Map{
		"accessToken":  output.Tokens.AccessToken,
		"refreshToken": output.Tokens.RefreshToken,
	})
}

// Logout always clears the cookie; revoking the session is best effort.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.presentedRefreshToken(c); token != "" {
		if err := h.authUC.Logout(c.Request().Context(), token); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Warn("Failed to revoke refresh session", slog.String("error", err.Error()))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	return response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// GoogleLogin redirects to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	authURL, err := h.authUC.GoogleAuthURL(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	output, err := h.authUC.GoogleCallback(c.Request().Context(), c.QueryParam("code"), c.QueryParam("state"))
	if err != nil {
		return errors.WithStack(err)
	}

	// The callback is reached through a cross-site redirect.
	c.SetCookie(h.refreshCookie(output.Tokens.RefreshToken, http.SameSiteNoneMode, true))

	return response.Success(c, http.StatusOK, "User logged in successfully", echo.Map{
		"accessToken":  output.Tokens.AccessToken,
		"refreshToken": output.Tokens.RefreshToken,
	})
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Authenticated", echo.Map{"user": toUserResponse(user)})
}

func (h *AuthHandler) refreshCookie(token string, sameSite http.SameSite, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(refreshCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

func (h *AuthHandler) presentedRefreshToken(c echo.Context) string {
	var req RefreshRequest
	if err := c.Bind(&req); err == nil && strings.TrimSpace(req.RefreshToken) != "" {
		return strings.TrimSpace(req.RefreshToken)
	}

	if cookie, err := c.Cookie(constants.RefreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return ""
}
