package handler

import (
	"net/http"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/labstack/echo/v4"
)

// ListBooks godoc
// @Summary list books
// @Tags books
// @Param search query string false "title or author substring"
// @Param genre query string false "genre"
// @Param location query string false "location"
// @Success 200 {array} model.Book
// @Router /api/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	filter := model.BookFilter{
		Search:   c.QueryParam("search"),
		Genre:    c.QueryParam("genre"),
		Location: model.Location(c.QueryParam("location")),
	}
	books, err := h.librarySvc.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.librarySvc.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) Availability(c echo.Context) error {
	av, err := h.librarySvc.Availability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, av)
}

type bookResponse struct {
	Message string     `json:"message"`
	Book    model.Book `json:"book"`
}

// CreateBook godoc
// @Summary add a book
// @Tags books
// @Security BearerAuth
// @Param book body model.CreateBookRequest true "book"
// @Success 201 {object} bookResponse
// @Failure 400 {object} messageResponse
// @Router /api/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, bookResponse{Message: "Book created successfully", Book: book})
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, bookResponse{Message: "Book updated successfully", Book: book})
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.librarySvc.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Book deleted successfully"})
}

// Borrow godoc
// @Summary borrow a copy
// @Tags books
// @Security BearerAuth
// @Param req body model.BorrowRequest true "book"
// @Success 200 {object} model.BorrowResponse
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /api/books/borrow [post]
func (h *Handler) Borrow(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.BorrowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	dueDate, err := h.librarySvc.Borrow(c.Request().Context(), req.BookID, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.BorrowResponse{Message: "Book borrowed successfully", DueDate: dueDate})
}

// Return godoc
// @Summary return a copy
// @Tags books
// @Security BearerAuth
// @Param req body model.BorrowRequest true "book"
// @Success 200 {object} messageResponse
// @Failure 400 {object} messageResponse
// @Router /api/books/return [post]
func (h *Handler) Return(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.BorrowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.librarySvc.Return(c.Request().Context(), req.BookID, uid); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Book returned successfully"})
}
