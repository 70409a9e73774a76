package handler

import (
	"net/http"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/labstack/echo/v4"
)

// Register godoc
// @Summary create an account
// @Tags auth
// @Param req body model.RegisterRequest true "account"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Router /api/auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.librarySvc.Register(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, model.UserResponse{Message: "User registered successfully", User: u})
}

// Login godoc
// @Summary exchange credentials for an access token
// @Tags auth
// @Param req body model.LoginRequest true "credentials"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} messageResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.librarySvc.Login(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Profile(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	u, err := h.librarySvc.Profile(c.Request().Context(), uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}
