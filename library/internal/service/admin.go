package service

import (
	"context"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	libraryRepo "github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (s *Service) UserStats(ctx context.Context) (model.UserStats, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	return model.ComputeUserStats(users), nil
}

func (s *Service) BookStats(ctx context.Context) (model.BookStats, error) {
	books, err := s.repo.ListBooks(ctx, model.BookFilter{})
	if err != nil {
		return model.BookStats{}, err
	}
	return model.ComputeBookStats(books, s.now()), nil
}

func (s *Service) PrintoutStats(ctx context.Context) (model.PrintoutStats, error) {
	printouts, err := s.repo.ListPrintouts(ctx, model.PrintoutFilter{})
	if err != nil {
		return model.PrintoutStats{}, err
	}
	return model.ComputePrintoutStats(printouts), nil
}

// Report loads the requested collections concurrently.
func (s *Service) Report(ctx context.Context, reportType model.ReportType) (model.Report, error) {
	if !reportType.Valid() {
		return model.Report{}, errors.Wrapf(errs.ErrValidation, "unknown reportType %q", reportType)
	}

	var (
		report    model.Report
		users     []model.User
		books     []model.Book
		printouts []model.Printout
	)
	g, gCtx := errgroup.WithContext(ctx)
	if reportType.Includes(model.ReportUsers) {
		g.Go(func() (err error) {
			users, err = s.repo.ListUsers(gCtx)
			return err
		})
	}
	if reportType.Includes(model.ReportBooks) {
		g.Go(func() (err error) {
			books, err = s.repo.ListBooks(gCtx, model.BookFilter{})
			return err
		})
	}
	if reportType.Includes(model.ReportPrintouts) {
		g.Go(func() (err error) {
			printouts, err = s.repo.ListPrintouts(gCtx, model.PrintoutFilter{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return model.Report{}, err
	}

	if reportType.Includes(model.ReportUsers) {
		rows := model.UserReport(users)
		report.Users = &rows
	}
	if reportType.Includes(model.ReportBooks) {
		rows := model.BookReport(books)
		report.Books = &rows
	}
	if reportType.Includes(model.ReportPrintouts) {
		rows := model.PrintoutReport(printouts)
		report.Printouts = &rows
	}
	report.GeneratedAt = s.now()
	return report, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, model.SummarizeUser(u))
	}
	return out, nil
}

func (s *Service) ListBookSummaries(ctx context.Context) ([]model.BookSummary, error) {
	books, err := s.repo.ListBooks(ctx, model.BookFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]model.BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, model.SummarizeBook(b))
	}
	return out, nil
}

// UserBorrowHistory lists the user's borrow records with book details.
// Records of deleted books keep only the book id.
func (s *Service) UserBorrowHistory(ctx context.Context, userID string) ([]model.BorrowHistoryEntry, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	books, err := s.repo.ListBooks(ctx, model.BookFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	history := make([]model.BorrowHistoryEntry, 0, len(user.BorrowedBooks))
	for _, r := range user.BorrowedBooks {
		entry := model.BorrowHistoryEntry{
			BookID:     r.BookID,
			BorrowDate: r.BorrowDate,
			DueDate:    r.DueDate,
			ReturnDate: r.ReturnDate,
			IsReturned: r.IsReturned,
		}
		if b, ok := byID[r.BookID]; ok {
			entry.BookTitle = b.Title
			entry.Author = b.Author
		}
		history = append(history, entry)
	}
	return history, nil
}

func (s *Service) PromoteUser(ctx context.Context, userID string) (model.User, error) {
	return s.updateUser(ctx, userID, func(u *model.User) { u.Role = model.RoleAdmin })
}

func (s *Service) DemoteUser(ctx context.Context, userID string) (model.User, error) {
	return s.updateUser(ctx, userID, func(u *model.User) { u.Role = model.RoleUser })
}

func (s *Service) DeactivateUser(ctx context.Context, userID string) (model.User, error) {
	return s.updateUser(ctx, userID, func(u *model.User) { u.IsActive = false })
}

func (s *Service) updateUser(ctx context.Context, userID string, mutate func(u *model.User)) (model.User, error) {
	var user model.User
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		var err error
		if user, err = st.GetUserForUpdate(ctx, userID); err != nil {
			return err
		}
		mutate(&user)
		return st.UpdateUser(ctx, user)
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user updated", zap.String("userId", userID), zap.String("role", string(user.Role)), zap.Bool("active", user.IsActive))
	return user, nil
}
