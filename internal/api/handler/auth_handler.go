package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-manager/internal/api/metrics"
	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/core/validation"
)

type AuthHandler struct {
	authService ports.AuthService
	validate    *validation.Validator
}

func NewAuthHandler(authService ports.AuthService, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      validation.RegisterRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      409   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /api/v1/user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := h.validate.Registration(req)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("register", failureReason(err)).Inc()
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, authResponse{Message: "user registered", Token: res.Token, User: res.User})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      validation.LoginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /api/v1/user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := h.validate.Login(req)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", "invalid").Inc()
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", failureReason(err)).Inc()
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Message: "login successful", Token: res.Token, User: res.User})
}

// Me returns the authenticated user with the ids of their tasks.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/user/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Delete removes the authenticated user and all of their tasks.
//
// @Summary      Delete account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/user/delete [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Delete(c.Request().Context(), identity.UserID); err != nil {
		metrics.AuthEventsTotal.WithLabelValues("delete", failureReason(err)).Inc()
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// Logout revokes the token used for this request.
//
// @Summary      Logout
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /api/v1/user/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), identity); err != nil {
		metrics.AuthEventsTotal.WithLabelValues("logout", failureReason(err)).Inc()
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("logout", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}
