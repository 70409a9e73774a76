package service

import (
	"context"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	libraryRepo "github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Service) CreatePrintout(ctx context.Context, userID string, req model.CreatePrintoutRequest) (model.Printout, error) {
	if req.ColorMode != model.ColorModeBW && req.ColorMode != model.ColorModeColor {
		return model.Printout{}, errors.Wrapf(errs.ErrValidation, "unknown colorMode %q", req.ColorMode)
	}
	if req.DocumentName == "" {
		return model.Printout{}, errors.Wrap(errs.ErrValidation, "documentName is required")
	}
	if req.TotalPages < 1 || req.TotalPages > model.MaxPages {
		return model.Printout{}, errors.Wrapf(errs.ErrValidation, "totalPages must be between 1 and %d", model.MaxPages)
	}
	if req.Copies < 0 || req.Copies > model.MaxCopies {
		return model.Printout{}, errors.Wrapf(errs.ErrValidation, "copies must be between 1 and %d", model.MaxCopies)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return model.Printout{}, err
	}
	if !user.IsActive {
		return model.Printout{}, errors.Wrap(errs.ErrForbidden, "account is deactivated")
	}
	p := model.NewPrintout(user, req, s.now())
	if err := s.repo.CreatePrintout(ctx, p); err != nil {
		return model.Printout{}, err
	}

	s.publish(kafka.Event{EventType: kafka.EventPrintoutCreated, UserID: userID, PrintoutID: p.ID, Amount: p.TotalCost})
	return p, nil
}

// ConfirmPayment marks the printout paid and credits the owner's counters
// in one unit of work. Confirming a paid printout returns it unchanged.
func (s *Service) ConfirmPayment(ctx context.Context, userID string, req model.ConfirmPaymentRequest) (model.Printout, error) {
	var (
		p       model.Printout
		applied bool
	)
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		var err error
		if p, err = st.GetPrintoutForUpdate(ctx, req.PrintoutID); err != nil {
			return err
		}
		if p.UserID != userID {
			return errors.Wrap(errs.ErrForbidden, "printout belongs to another user")
		}
		if applied, err = p.ConfirmPayment(req.TransactionID, req.PaymentMethod); err != nil || !applied {
			return err
		}
		if err := st.UpdatePrintout(ctx, p); err != nil {
			return err
		}
		return st.AddPrintoutSpend(ctx, p.UserID, p.TotalCost)
	})
	if err != nil {
		return model.Printout{}, err
	}

	if applied {
		s.log.Info("printout paid", zap.String("printoutId", p.ID), zap.Int64("amount", p.TotalCost))
		s.publish(kafka.Event{EventType: kafka.EventPrintoutPaid, UserID: p.UserID, PrintoutID: p.ID, Amount: p.TotalCost})
	}
	return p, nil
}

func (s *Service) UpdatePrintoutStatus(ctx context.Context, id string, status model.Status) (model.Printout, error) {
	var p model.Printout
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		var err error
		if p, err = st.GetPrintoutForUpdate(ctx, id); err != nil {
			return err
		}
		if err := p.SetStatus(status, s.now()); err != nil {
			return err
		}
		return st.UpdatePrintout(ctx, p)
	})
	if err != nil {
		return model.Printout{}, err
	}

	s.publish(kafka.Event{EventType: kafka.EventPrintoutStatus, UserID: p.UserID, PrintoutID: p.ID, Status: string(p.Status)})
	return p, nil
}

func (s *Service) CancelPrintout(ctx context.Context, id, userID string) error {
	err := s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		p, err := st.GetPrintoutForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return errors.Wrap(errs.ErrForbidden, "printout belongs to another user")
		}
		if err := p.Cancel(s.now()); err != nil {
			return err
		}
		return st.UpdatePrintout(ctx, p)
	})
	if err != nil {
		return err
	}

	s.publish(kafka.Event{EventType: kafka.EventPrintoutCancelled, UserID: userID, PrintoutID: id})
	return nil
}

func (s *Service) PrintoutHistory(ctx context.Context, userID string) ([]model.Printout, error) {
	return s.repo.ListPrintouts(ctx, model.PrintoutFilter{UserID: userID})
}

// GetPrintout returns the printout to its owner or to an admin.
func (s *Service) GetPrintout(ctx context.Context, id, userID string, isAdmin bool) (model.Printout, error) {
	p, err := s.repo.GetPrintout(ctx, id)
	if err != nil {
		return model.Printout{}, err
	}
	if !isAdmin && p.UserID != userID {
		return model.Printout{}, errors.Wrap(errs.ErrForbidden, "printout belongs to another user")
	}
	return p, nil
}
