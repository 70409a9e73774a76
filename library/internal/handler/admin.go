package handler

import (
	"net/http"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.librarySvc.ListUsers(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) UserStats(c echo.Context) error {
	st, err := h.librarySvc.UserStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UserBorrowHistory(c echo.Context) error {
	history, err := h.librarySvc.UserBorrowHistory(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) PromoteUser(c echo.Context) error {
	u, err := h.librarySvc.PromoteUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.UserResponse{Message: "User promoted to admin", User: u})
}

func (h *Handler) DemoteUser(c echo.Context) error {
	u, err := h.librarySvc.DemoteUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.UserResponse{Message: "Admin demoted to user", User: u})
}

func (h *Handler) DeactivateUser(c echo.Context) error {
	u, err := h.librarySvc.DeactivateUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.UserResponse{Message: "User deactivated", User: u})
}

func (h *Handler) ListBookSummaries(c echo.Context) error {
	books, err := h.librarySvc.ListBookSummaries(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) BookStats(c echo.Context) error {
	st, err := h.librarySvc.BookStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) PrintoutStats(c echo.Context) error {
	st, err := h.librarySvc.PrintoutStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// Report godoc
// @Summary admin report
// @Tags admin
// @Security BearerAuth
// @Param reportType query string false "users, books or printouts; all when empty"
// @Success 200 {object} model.Report
// @Failure 400 {object} messageResponse
// @Router /api/admin/reports [get]
func (h *Handler) Report(c echo.Context) error {
	report, err := h.librarySvc.Report(c.Request().Context(), model.ReportType(c.QueryParam("reportType")))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
