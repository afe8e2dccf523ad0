package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/api/metrics"
	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// frontendCallbackURL is where the browser is sent after login, with
	// the issued token appended as a query parameter.
	frontendCallbackURL string
	log                 zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, frontendCallbackURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		frontendCallbackURL: frontendCallbackURL,
		log:                 log,
	}
}

// GoogleLogin handles GET /api/auth/google-login: redirects the browser to
// the Google consent screen.
//
// @Summary      Start the Google login flow
// @Tags         auth
// @Success      302
// @Failure      500  {object}  map[string]string
// @Router       /api/auth/google-login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	loginURL, err := h.authService.LoginURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, loginURL)
}

// GoogleCallback handles GET /api/auth/google-callback: completes the OAuth
// dance and redirects to the frontend with the session token.
//
// @Summary      Complete the Google login flow
// @Tags         auth
// @Param        state  query  string  true  "CSRF state"
// @Param        code   query  string  true  "Authorization code"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/google-callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if state == "" || code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing state or code")
	}

	token, user, err := h.authService.HandleCallback(c.Request().Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOAuthStateMismatch):
			metrics.OAuthLoginsTotal.WithLabelValues("state_mismatch").Inc()
		case errors.Is(err, domain.ErrOAuthFailed):
			metrics.OAuthLoginsTotal.WithLabelValues("failed").Inc()
		}
		return err
	}

	metrics.OAuthLoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Int64("user_id", user.ID).Msg("login completed")

	redirect := h.frontendCallbackURL + "?token=" + url.QueryEscape(token)
	return c.Redirect(http.StatusFound, redirect)
}

type verifyResponse struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// Verify handles GET /api/auth/verify?token=... and returns the profile
// behind a session token.
//
// @Summary      Verify a session token
// @Tags         auth
// @Param        token  query  string  true  "Session token"
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	user, err := h.authService.Verify(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.AuthRejectionsTotal.WithLabelValues("rest").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, verifyResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		ProfilePictureURL: user.ProfilePictureURL,
	})
}
