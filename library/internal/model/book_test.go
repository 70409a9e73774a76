package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newBook(total int) model.Book {
	return model.NewBook(model.CreateBookRequest{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "Science fiction",
		PublicationYear: 1965,
		TotalCopies:     intPtr(total),
	}, time.Now())
}

func TestNewBook_Defaults(t *testing.T) {
	t.Parallel()
	b := model.NewBook(model.CreateBookRequest{Title: "t", Author: "a", Genre: "g", PublicationYear: 2000}, time.Now())
	require.Equal(t, 1, b.TotalCopies)
	require.Equal(t, 1, b.AvailableCopies)
	require.Equal(t, model.LocationMain, b.Location)
	require.Nil(t, b.ISBN)
	require.NotEmpty(t, b.ID)
}

func TestBook_IssueReturn(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	b := newBook(2)
	alice := model.User{ID: "alice", Name: "Alice"}

	issued, err := b.Issue(alice, now)
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 0, 14), issued.DueDate)
	require.Equal(t, "Alice", issued.BorrowerName)
	require.Equal(t, 1, b.AvailableCopies)
	require.Equal(t, model.AvailabilityAvailable, b.Status())

	_, err = b.Issue(alice, now)
	require.ErrorIs(t, err, errs.ErrAlreadyBorrowed)

	_, err = b.Issue(model.User{ID: "bob"}, now)
	require.NoError(t, err)
	require.Equal(t, 0, b.AvailableCopies)
	require.Equal(t, model.AvailabilityIssued, b.Status())

	_, err = b.Issue(model.User{ID: "carol"}, now)
	require.ErrorIs(t, err, errs.ErrUnavailable)

	_, err = b.Return("carol", now)
	require.ErrorIs(t, err, errs.ErrNotBorrowed)

	returned, err := b.Return("alice", now.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, returned.IsReturned)
	require.NotNil(t, returned.ReturnDate)
	require.Equal(t, 1, b.AvailableCopies)
	require.Len(t, b.IssuedCopies, 2)
	require.Len(t, b.ActiveIssuedCopies(), 1)

	_, err = b.Return("alice", now)
	require.ErrorIs(t, err, errs.ErrNotBorrowed)
}

func TestBook_ReturnNeverExceedsTotal(t *testing.T) {
	t.Parallel()
	b := newBook(1)
	b.IssuedCopies = append(b.IssuedCopies, model.IssuedCopy{UserID: "u"})

	_, err := b.Return("u", time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, b.AvailableCopies)
}

func TestBook_SetTotalCopies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		issued        int
		total         int
		wantErr       error
		wantAvailable int
	}{
		{name: "grow", issued: 1, total: 5, wantAvailable: 4},
		{name: "shrink to issued", issued: 2, total: 2, wantAvailable: 0},
		{name: "below issued", issued: 2, total: 1, wantErr: errs.ErrValidation},
		{name: "negative", total: -1, wantErr: errs.ErrValidation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBook(3)
			for i := 0; i < tt.issued; i++ {
				_, err := b.Issue(model.User{ID: string(rune('a' + i))}, time.Now())
				require.NoError(t, err)
			}
			err := b.SetTotalCopies(tt.total)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAvailable, b.AvailableCopies)
			require.Equal(t, tt.total, b.TotalCopies)
		})
	}
}

func TestBook_Apply(t *testing.T) {
	t.Parallel()
	b := newBook(1)
	title := "Dune Messiah"
	isbn := ""
	loc := model.LocationSub
	err := b.Apply(model.UpdateBookRequest{Title: &title, ISBN: &isbn, Location: &loc, TotalCopies: intPtr(3)}, time.Now())
	require.NoError(t, err)
	require.Equal(t, title, b.Title)
	require.Equal(t, "Frank Herbert", b.Author)
	require.Nil(t, b.ISBN)
	require.Equal(t, model.LocationSub, b.Location)
	require.Equal(t, 3, b.AvailableCopies)
}

func TestUser_BorrowReturn(t *testing.T) {
	t.Parallel()
	u := model.NewUser("Alice", "alice@example.com", "hash", model.RoleUser, time.Now())
	rec := u.Borrow(model.IssuedCopy{BookID: "b1", IssueDate: time.Now(), DueDate: time.Now()})
	require.Equal(t, "b1", rec.BookID)
	require.Equal(t, 1, u.ActiveBorrowCount())

	_, ok := u.ReturnBook("b2", time.Now())
	require.False(t, ok)

	got, ok := u.ReturnBook("b1", time.Now())
	require.True(t, ok)
	require.True(t, got.IsReturned)
	require.Equal(t, 0, u.ActiveBorrowCount())
	require.Len(t, u.BorrowedBooks, 1)
}
