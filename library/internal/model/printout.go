package model

import (
	"fmt"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	PricePerPageBW    int64 = 1
	PricePerPageColor int64 = 3

	Currency = "INR"

	MaxCopies = 10
	MaxPages  = 10000
)

type ColorMode string

const (
	ColorModeBW    ColorMode = "BW"
	ColorModeColor ColorMode = "Color"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentGPay       PaymentMethod = "gpay"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func PricePerPage(mode ColorMode) int64 {
	if mode == ColorModeColor {
		return PricePerPageColor
	}
	return PricePerPageBW
}

func TotalCost(mode ColorMode, totalPages, copies int) int64 {
	return PricePerPage(mode) * int64(totalPages) * int64(copies)
}

type Printout struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"userId" db:"user_id"`
	UserName      string        `json:"userName" db:"user_name"`
	DocumentName  string        `json:"documentName" db:"document_name"`
	FileURL       string        `json:"fileUrl,omitempty" db:"file_url"`
	ColorMode     ColorMode     `json:"colorMode" db:"color_mode"`
	Copies        int           `json:"copies" db:"copies"`
	TotalPages    int           `json:"totalPages" db:"total_pages"`
	TotalCost     int64         `json:"totalCost" db:"total_cost"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	TransactionID *string       `json:"transactionId" db:"transaction_id"`
	Status        Status        `json:"status" db:"status"`
	Notes         string        `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	CompletedAt   *time.Time    `json:"completedAt" db:"completed_at"`
}

func NewPrintout(user User, req CreatePrintoutRequest, now time.Time) Printout {
	copies := req.Copies
	if copies == 0 {
		copies = 1
	}
	return Printout{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.Name,
		DocumentName:  req.DocumentName,
		FileURL:       req.FileURL,
		ColorMode:     req.ColorMode,
		Copies:        copies,
		TotalPages:    req.TotalPages,
		TotalCost:     TotalCost(req.ColorMode, req.TotalPages, copies),
		PaymentStatus: PaymentPending,
		PaymentMethod: PaymentGPay,
		Status:        StatusPending,
		Notes:         req.Notes,
		CreatedAt:     now,
	}
}

func (p *Printout) PaymentDetails() PaymentDetails {
	return PaymentDetails{
		Amount:      p.TotalCost,
		Currency:    Currency,
		Description: fmt.Sprintf("%s - %d pages x %d copies", p.DocumentName, p.TotalPages, p.Copies),
	}
}

// ConfirmPayment marks the order paid. It reports false when the order was
// already paid, in which case nothing changes.
func (p *Printout) ConfirmPayment(transactionID string, method PaymentMethod) (bool, error) {
	if p.PaymentStatus == PaymentCompleted {
		return false, nil
	}
	if p.Status.IsTerminal() {
		return false, errors.Wrapf(errs.ErrInvalidTransition, "cannot pay for a %s printout", p.Status)
	}
	if method == "" {
		method = PaymentGPay
	}
	p.PaymentStatus = PaymentCompleted
	p.PaymentMethod = method
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	if p.Status == StatusPending {
		p.Status = StatusProcessing
	}
	return true, nil
}

func (p *Printout) SetStatus(next Status, now time.Time) error {
	if !next.Valid() {
		return errors.Wrapf(errs.ErrValidation, "unknown status %q", next)
	}
	if !p.Status.CanTransitionTo(next) {
		return errors.Wrapf(errs.ErrInvalidTransition, "%s -> %s", p.Status, next)
	}
	p.Status = next
	if next == StatusCompleted {
		completedAt := now
		p.CompletedAt = &completedAt
	}
	return nil
}

func (p *Printout) Cancel(now time.Time) error {
	if p.Status.IsTerminal() {
		return errors.Wrapf(errs.ErrInvalidTransition, "cannot cancel a %s printout", p.Status)
	}
	return p.SetStatus(StatusCancelled, now)
}

type PrintoutFilter struct {
	UserID string
}

type CreatePrintoutRequest struct {
	DocumentName string    `json:"documentName" validate:"required"`
	FileURL      string    `json:"fileUrl" validate:"omitempty,max=2048"`
	ColorMode    ColorMode `json:"colorMode" validate:"required,oneof=BW Color"`
	Copies       int       `json:"copies" validate:"omitempty,min=1,max=10"`
	TotalPages   int       `json:"totalPages" validate:"required,min=1,max=10000"`
	Notes        string    `json:"notes" validate:"omitempty,max=1000"`
}

type ConfirmPaymentRequest struct {
	PrintoutID    string        `json:"printoutId" validate:"required"`
	TransactionID string        `json:"transactionId"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=gpay credit_card debit_card"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type PaymentDetails struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type CreatePrintoutResponse struct {
	Message        string         `json:"message"`
	Printout       Printout       `json:"printout"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}

type PrintoutResponse struct {
	Message  string   `json:"message"`
	Printout Printout `json:"printout"`
}
