package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/stretchr/testify/require"
)

func TestComputeBookStats(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := now.Add(-time.Hour)
	books := []model.Book{
		{
			TotalCopies: 3, AvailableCopies: 1,
			IssuedCopies: []model.IssuedCopy{
				{UserID: "a", DueDate: now.Add(-time.Hour)},
				{UserID: "b", DueDate: now.Add(time.Hour)},
				{UserID: "c", DueDate: now.Add(-time.Hour), IsReturned: true, ReturnDate: &returnedAt},
			},
		},
		{TotalCopies: 2, AvailableCopies: 2},
	}

	st := model.ComputeBookStats(books, now)
	require.Equal(t, 2, st.TotalBooks)
	require.Equal(t, 5, st.TotalCopies)
	require.Equal(t, 3, st.AvailableCopies)
	require.Equal(t, 2, st.IssuedBooks)
	require.Equal(t, st.IssuedBooks, st.BorrowReturnStats.TotalBorrowed)
	require.Equal(t, 1, st.BorrowReturnStats.TotalReturned)
	require.Equal(t, 1, st.BorrowReturnStats.Overdue)
}

func TestComputeUserStats(t *testing.T) {
	t.Parallel()
	st := model.ComputeUserStats([]model.User{
		{Role: model.RoleAdmin},
		{Role: model.RoleUser, TotalPrintoutSpent: 30, TotalPrintoutsCount: 2},
		{Role: model.RoleUser, TotalPrintoutSpent: 10, TotalPrintoutsCount: 1},
	})
	require.Equal(t, model.UserStats{
		TotalUsers:    3,
		AdminUsers:    1,
		RegularUsers:  2,
		PrintoutStats: model.PrintoutSpend{TotalSpent: 40, TotalPrintouts: 3},
	}, st)
}

func TestComputePrintoutStats(t *testing.T) {
	t.Parallel()
	st := model.ComputePrintoutStats([]model.Printout{
		{ColorMode: model.ColorModeColor, TotalCost: 30, Status: model.StatusProcessing, PaymentStatus: model.PaymentCompleted},
		{ColorMode: model.ColorModeBW, TotalCost: 10, Status: model.StatusCompleted, PaymentStatus: model.PaymentCompleted},
		{ColorMode: model.ColorModeBW, TotalCost: 5, Status: model.StatusPending, PaymentStatus: model.PaymentPending},
	})
	require.Equal(t, 3, st.TotalPrintouts)
	require.Equal(t, int64(40), st.Revenue)
	require.Equal(t, 1, st.ByStatus[model.StatusPending])
	require.Equal(t, 2, st.ByPaymentStatus[model.PaymentCompleted])
	require.Equal(t, model.ColorModeStats{Count: 2, Revenue: 10}, st.ColorModeBreakdown[model.ColorModeBW])
	require.Equal(t, model.ColorModeStats{Count: 1, Revenue: 30}, st.ColorModeBreakdown[model.ColorModeColor])
}

func TestReportType(t *testing.T) {
	t.Parallel()
	require.True(t, model.ReportAll.Includes(model.ReportBooks))
	require.True(t, model.ReportBooks.Includes(model.ReportBooks))
	require.False(t, model.ReportUsers.Includes(model.ReportBooks))
	require.False(t, model.ReportType("fines").Valid())
}
