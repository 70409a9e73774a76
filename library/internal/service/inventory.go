package service

import (
	"context"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	libraryRepo "github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Service) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) GetBook(ctx context.Context, id string) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) Availability(ctx context.Context, id string) (model.Availability, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Availability{}, err
	}
	return book.Availability(), nil
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if req.TotalCopies != nil && *req.TotalCopies < 0 {
		return model.Book{}, errors.Wrap(errs.ErrValidation, "totalCopies must be >= 0")
	}
	book := model.NewBook(req, s.now())
	if err := s.repo.CreateBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (model.Book, error) {
	var book model.Book
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		var err error
		if book, err = st.GetBookForUpdate(ctx, id); err != nil {
			return err
		}
		if err := book.Apply(req, s.now()); err != nil {
			return err
		}
		return st.UpdateBook(ctx, book)
	})
	if err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return s.repo.DeleteBook(ctx, id)
}

// Borrow lends one copy of the book to the user and returns the due date.
// Rows are locked book first, then user.
func (s *Service) Borrow(ctx context.Context, bookID, userID string) (time.Time, error) {
	var issued model.IssuedCopy
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		book, err := st.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return errors.Wrap(err, "book")
		}
		user, err := st.GetUserForUpdate(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "user")
		}
		if !user.IsActive {
			return errors.Wrap(errs.ErrForbidden, "account is deactivated")
		}
		if issued, err = book.Issue(user, s.now()); err != nil {
			return err
		}
		if err := st.InsertIssuedCopy(ctx, issued); err != nil {
			return err
		}
		if err := st.UpdateBook(ctx, book); err != nil {
			return err
		}
		return st.InsertBorrowRecord(ctx, user.Borrow(issued))
	})
	if err != nil {
		return time.Time{}, err
	}

	s.log.Info("book borrowed", zap.String("bookId", bookID), zap.String("userId", userID))
	s.publish(kafka.Event{EventType: kafka.EventBookBorrowed, UserID: userID, BookID: bookID})
	return issued.DueDate, nil
}

// Return closes the user's first active copy of the book and the matching borrow record.
func (s *Service) Return(ctx context.Context, bookID, userID string) error {
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		book, err := st.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return errors.Wrap(err, "book")
		}
		returned, err := book.Return(userID, s.now())
		if err != nil {
			return err
		}
		if err := st.UpdateIssuedCopy(ctx, returned); err != nil {
			return err
		}
		if err := st.UpdateBook(ctx, book); err != nil {
			return err
		}

		user, err := st.GetUserForUpdate(ctx, userID)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if record, ok := user.ReturnBook(bookID, *returned.ReturnDate); ok {
			return st.UpdateBorrowRecord(ctx, record)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("book returned", zap.String("bookId", bookID), zap.String("userId", userID))
	s.publish(kafka.Event{EventType: kafka.EventBookReturned, UserID: userID, BookID: bookID})
	return nil
}
