package handler

import (
	"net/http"

	"contactbook/config"
	"contactbook/internal/delivery/api/response"
	"contactbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	msgEmailConfirmed        = "Email confirmed"
	msgEmailAlreadyConfirmed = "Your email is already confirmed"
	msgCheckEmail            = "Check your email for confirmation"
	msgCheckResetEmail       = "Check your email to confirm the password change"
	msgPasswordChanged       = "Password changed"
)

// AuthHandler serves registration, login and the mailed-link flows.
type AuthHandler struct {
	uc         usecase.UserUsecase
	publicHost string
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{uc: uc, publicHost: cfg.Env.PublicHost}
}

// host is the base URL for mailed links. It falls back to the request's own
// origin when no public host is configured.
func (h *AuthHandler) host(c echo.Context) string {
	if h.publicHost != "" {
		return h.publicHost
	}

	return c.Scheme() + "://" + c.Request().Host + "/"
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Host:     h.host(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &TokenResponse{AccessToken: out.AccessToken, TokenType: out.TokenType})
}

func (h *AuthHandler) ConfirmedEmail(c echo.Context) error {
	already, err := h.uc.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return errors.WithStack(err)
	}
	if already {
		return response.SuccessMessage(c, http.StatusOK, msgEmailAlreadyConfirmed)
	}

	return response.SuccessMessage(c, http.StatusOK, msgEmailConfirmed)
}

func (h *AuthHandler) RequestEmail(c echo.Context) error {
	var req RequestEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	already, err := h.uc.RequestEmail(c.Request().Context(), req.Email, h.host(c))
	if err != nil {
		return errors.WithStack(err)
	}
	if already {
		return response.SuccessMessage(c, http.StatusOK, msgEmailAlreadyConfirmed)
	}

	return response.SuccessMessage(c, http.StatusOK, msgCheckEmail)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Email:    req.Email,
		Password: req.Password,
		Host:     h.host(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessMessage(c, http.StatusOK, msgCheckResetEmail)
}

func (h *AuthHandler) ConfirmResetPassword(c echo.Context) error {
	if err := h.uc.ConfirmResetPassword(c.Request().Context(), c.Param("token")); err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessMessage(c, http.StatusOK, msgPasswordChanged)
}
