package repository

import (
	"context"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var printoutColumns = []string{
	"id", "user_id", "user_name", "document_name", "file_url", "color_mode", "copies",
	"total_pages", "total_cost", "payment_status", "payment_method", "transaction_id",
	"status", "notes", "created_at", "completed_at",
}

func (s *store) ListPrintouts(ctx context.Context, filter model.PrintoutFilter) ([]model.Printout, error) {
	q := qb.Select(printoutColumns...).
		From(printoutsTableName).
		OrderBy("created_at DESC")
	if filter.UserID != "" {
		q = q.Where(sq.Eq{"user_id": filter.UserID})
	}

	printouts := make([]model.Printout, 0)
	if err := s.selectAll(ctx, &printouts, q); err != nil {
		return nil, err
	}
	return printouts, nil
}

func (s *store) GetPrintout(ctx context.Context, id string) (model.Printout, error) {
	return s.getPrintout(ctx, id, false)
}

func (s *store) GetPrintoutForUpdate(ctx context.Context, id string) (model.Printout, error) {
	return s.getPrintout(ctx, id, true)
}

func (s *store) getPrintout(ctx context.Context, id string, lock bool) (model.Printout, error) {
	q := qb.Select(printoutColumns...).
		From(printoutsTableName).
		Where(sq.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	var p model.Printout
	if err := s.get(ctx, &p, q); err != nil {
		return model.Printout{}, err
	}
	return p, nil
}

func (s *store) CreatePrintout(ctx context.Context, p model.Printout) error {
	q := qb.Insert(printoutsTableName).
		Columns(printoutColumns...).
		Values(p.ID, p.UserID, p.UserName, p.DocumentName, p.FileURL, p.ColorMode, p.Copies,
			p.TotalPages, p.TotalCost, p.PaymentStatus, p.PaymentMethod, p.TransactionID,
			p.Status, p.Notes, p.CreatedAt, p.CompletedAt)
	return s.exec(ctx, q)
}

// UpdatePrintout writes the mutable lifecycle columns.
func (s *store) UpdatePrintout(ctx context.Context, p model.Printout) error {
	q := qb.Update(printoutsTableName).
		SetMap(map[string]interface{}{
			"payment_status": p.PaymentStatus,
			"payment_method": p.PaymentMethod,
			"transaction_id": p.TransactionID,
			"status":         p.Status,
			"completed_at":   p.CompletedAt,
		}).
		Where(sq.Eq{"id": p.ID})
	return s.exec(ctx, q)
}
