package handler

import (
	"context"
	"net/http"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	md "github.com/Astemirdum/elibrary-service/pkg/middleware"
	"github.com/Astemirdum/elibrary-service/pkg/validate"
	_ "github.com/Astemirdum/elibrary-service/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	librarySvc LibraryService
	tokens     auth.Tokens
	log        *zap.Logger
}

func New(librarySvc LibraryService, tokens auth.Tokens, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		tokens:     tokens,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	authMW := md.JwtAuthentication(h.tokens)
	adminMW := md.AdminOnly(h.currentRole)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/profile", h.Profile, authMW)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)
	api.GET("/books/:id/availability", h.Availability)
	api.POST("/books", h.CreateBook, authMW, adminMW)
	api.PUT("/books/:id", h.UpdateBook, authMW, adminMW)
	api.DELETE("/books/:id", h.DeleteBook, authMW, adminMW)
	api.POST("/books/borrow", h.Borrow, authMW)
	api.POST("/books/return", h.Return, authMW)

	printouts := api.Group("/printouts", authMW)
	printouts.POST("", h.CreatePrintout)
	printouts.POST("/confirm-payment", h.ConfirmPayment)
	printouts.GET("/history", h.PrintoutHistory)
	printouts.GET("/:printoutId", h.GetPrintout)
	printouts.DELETE("/:printoutId", h.CancelPrintout)
	printouts.PUT("/:printoutId/status", h.UpdatePrintoutStatus, adminMW)

	admin := api.Group("/admin", authMW, adminMW)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/stats", h.UserStats)
	admin.GET("/users/:userId/borrow-history", h.UserBorrowHistory)
	admin.PUT("/users/:userId/promote", h.PromoteUser)
	admin.PUT("/users/:userId/demote", h.DemoteUser)
	admin.PUT("/users/:userId/deactivate", h.DeactivateUser)
	admin.GET("/books", h.ListBookSummaries)
	admin.GET("/books/stats", h.BookStats)
	admin.GET("/printouts/stats", h.PrintoutStats)
	admin.GET("/reports", h.Report)

	return e
}

// Health godoc
// @Summary liveness probe
// @Tags manage
// @Success 200 {string} string "OK"
// @Router /manage/health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type messageResponse struct {
	Message string `json:"message"`
}

// httpError maps domain errors to HTTP statuses.
func (h *Handler) httpError(err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrUnavailable),
		errors.Is(err, errs.ErrNotBorrowed),
		errors.Is(err, errs.ErrAlreadyBorrowed),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	default:
		h.log.Error("internal", zap.Error(err))
	}
	return echo.NewHTTPError(status, err.Error())
}

// currentRole reports an empty role for missing or deactivated accounts.
func (h *Handler) currentRole(ctx context.Context, userID string) (string, error) {
	u, err := h.librarySvc.Profile(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", h.httpError(err)
	}
	if !u.IsActive {
		return "", nil
	}
	return string(u.Role), nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func userID(c echo.Context) (string, error) {
	id, err := auth.GetUserID(c.Request().Context())
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return id, nil
}
