package handler

import (
	"context"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/Astemirdum/elibrary-service/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	Availability(ctx context.Context, id string) (model.Availability, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id string) error
	Borrow(ctx context.Context, bookID, userID string) (time.Time, error)
	Return(ctx context.Context, bookID, userID string) error

	CreatePrintout(ctx context.Context, userID string, req model.CreatePrintoutRequest) (model.Printout, error)
	ConfirmPayment(ctx context.Context, userID string, req model.ConfirmPaymentRequest) (model.Printout, error)
	UpdatePrintoutStatus(ctx context.Context, id string, status model.Status) (model.Printout, error)
	CancelPrintout(ctx context.Context, id, userID string) error
	PrintoutHistory(ctx context.Context, userID string) ([]model.Printout, error)
	GetPrintout(ctx context.Context, id, userID string, isAdmin bool) (model.Printout, error)

	UserStats(ctx context.Context) (model.UserStats, error)
	BookStats(ctx context.Context) (model.BookStats, error)
	PrintoutStats(ctx context.Context) (model.PrintoutStats, error)
	Report(ctx context.Context, reportType model.ReportType) (model.Report, error)
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	ListBookSummaries(ctx context.Context) ([]model.BookSummary, error)
	UserBorrowHistory(ctx context.Context, userID string) ([]model.BorrowHistoryEntry, error)
	PromoteUser(ctx context.Context, userID string) (model.User, error)
	DemoteUser(ctx context.Context, userID string) (model.User, error)
	DeactivateUser(ctx context.Context, userID string) (model.User, error)

	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Profile(ctx context.Context, userID string) (model.User, error)
}

var _ LibraryService = (*service.Service)(nil)
