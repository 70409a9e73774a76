package handler

import (
	"net/http"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	"github.com/labstack/echo/v4"
)

// CreatePrintout godoc
// @Summary order a printout
// @Tags printouts
// @Security BearerAuth
// @Param req body model.CreatePrintoutRequest true "print job"
// @Success 201 {object} model.CreatePrintoutResponse
// @Failure 400 {object} messageResponse
// @Router /api/printouts [post]
func (h *Handler) CreatePrintout(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreatePrintoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.librarySvc.CreatePrintout(c.Request().Context(), uid, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, model.CreatePrintoutResponse{
		Message:        "Printout request created",
		Printout:       p,
		PaymentDetails: p.PaymentDetails(),
	})
}

// ConfirmPayment godoc
// @Summary confirm payment of a printout
// @Tags printouts
// @Security BearerAuth
// @Param req body model.ConfirmPaymentRequest true "payment"
// @Success 200 {object} model.PrintoutResponse
// @Failure 400 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Router /api/printouts/confirm-payment [post]
func (h *Handler) ConfirmPayment(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.ConfirmPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.librarySvc.ConfirmPayment(c.Request().Context(), uid, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.PrintoutResponse{
		Message:  "Payment confirmed, printout is being processed",
		Printout: p,
	})
}

func (h *Handler) PrintoutHistory(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	history, err := h.librarySvc.PrintoutHistory(c.Request().Context(), uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) GetPrintout(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	p, err := h.librarySvc.GetPrintout(ctx, c.Param("printoutId"), uid, auth.IsAdmin(ctx))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CancelPrintout(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.CancelPrintout(c.Request().Context(), c.Param("printoutId"), uid); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Printout cancelled successfully"})
}

// UpdatePrintoutStatus godoc
// @Summary move a printout through its lifecycle
// @Tags printouts
// @Security BearerAuth
// @Param printoutId path string true "printout id"
// @Param req body model.UpdateStatusRequest true "status"
// @Success 200 {object} model.PrintoutResponse
// @Failure 400 {object} messageResponse
// @Router /api/printouts/{printoutId}/status [put]
func (h *Handler) UpdatePrintoutStatus(c echo.Context) error {
	var req model.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.librarySvc.UpdatePrintoutStatus(c.Request().Context(), c.Param("printoutId"), req.Status)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.PrintoutResponse{Message: "Printout status updated", Printout: p})
}
