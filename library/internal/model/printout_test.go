package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/stretchr/testify/require"
)

func TestTotalCost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode   model.ColorMode
		pages  int
		copies int
		want   int64
	}{
		{model.ColorModeColor, 5, 2, 30},
		{model.ColorModeBW, 10, 1, 10},
		{model.ColorModeBW, 1, 10, 10},
		{model.ColorModeColor, 1, 1, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, model.TotalCost(tt.mode, tt.pages, tt.copies))
	}
}

func TestNewPrintout(t *testing.T) {
	t.Parallel()
	p := model.NewPrintout(model.User{ID: "u1", Name: "Alice"}, model.CreatePrintoutRequest{
		DocumentName: "thesis.pdf",
		ColorMode:    model.ColorModeColor,
		TotalPages:   5,
	}, time.Now())

	require.Equal(t, 1, p.Copies)
	require.Equal(t, int64(15), p.TotalCost)
	require.Equal(t, model.StatusPending, p.Status)
	require.Equal(t, model.PaymentPending, p.PaymentStatus)
	require.Equal(t, model.PaymentGPay, p.PaymentMethod)
	require.Equal(t, "Alice", p.UserName)

	details := p.PaymentDetails()
	require.Equal(t, int64(15), details.Amount)
	require.Equal(t, "INR", details.Currency)
	require.Equal(t, "thesis.pdf - 5 pages x 1 copies", details.Description)
}

func TestStatus_Transitions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from, to model.Status
		ok       bool
	}{
		{model.StatusPending, model.StatusProcessing, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusProcessing, model.StatusCompleted, true},
		{model.StatusProcessing, model.StatusCancelled, true},
		{model.StatusProcessing, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusProcessing, false},
		{model.StatusCancelled, model.StatusPending, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
	require.True(t, model.StatusCompleted.IsTerminal())
	require.True(t, model.StatusCancelled.IsTerminal())
	require.False(t, model.StatusProcessing.IsTerminal())
	require.False(t, model.Status("printed").Valid())
}

func TestPrintout_ConfirmPayment(t *testing.T) {
	t.Parallel()
	p := model.Printout{Status: model.StatusPending, PaymentStatus: model.PaymentPending, TotalCost: 30}

	applied, err := p.ConfirmPayment("tx-1", "")
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, model.PaymentCompleted, p.PaymentStatus)
	require.Equal(t, model.StatusProcessing, p.Status)
	require.Equal(t, model.PaymentGPay, p.PaymentMethod)
	require.Equal(t, "tx-1", *p.TransactionID)

	applied, err = p.ConfirmPayment("tx-2", model.PaymentCreditCard)
	require.NoError(t, err)
	require.False(t, applied)
	require.Equal(t, "tx-1", *p.TransactionID)
	require.Equal(t, model.PaymentGPay, p.PaymentMethod)

	cancelled := model.Printout{Status: model.StatusCancelled, PaymentStatus: model.PaymentPending}
	_, err = cancelled.ConfirmPayment("tx", model.PaymentGPay)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestPrintout_SetStatusAndCancel(t *testing.T) {
	t.Parallel()
	now := time.Now()
	p := model.Printout{Status: model.StatusProcessing}

	require.ErrorIs(t, p.SetStatus("printed", now), errs.ErrValidation)
	require.NoError(t, p.SetStatus(model.StatusCompleted, now))
	require.NotNil(t, p.CompletedAt)

	require.ErrorIs(t, p.Cancel(now), errs.ErrInvalidTransition)
	require.ErrorIs(t, p.SetStatus(model.StatusProcessing, now), errs.ErrInvalidTransition)

	pending := model.Printout{Status: model.StatusPending}
	require.NoError(t, pending.Cancel(now))
	require.Equal(t, model.StatusCancelled, pending.Status)
	require.ErrorIs(t, pending.Cancel(now), errs.ErrInvalidTransition)
}
