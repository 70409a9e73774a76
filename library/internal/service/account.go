package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	libraryRepo "github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}
	user := model.NewUser(req.Name, normalizeEmail(req.Email), hash, model.RoleUser, s.now())
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return model.User{}, err
	}
	s.log.Info("user registered", zap.String("userId", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, errs.ErrNotFound) {
		return model.AuthResponse{}, errs.ErrUnauthorized
	}
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, errs.ErrUnauthorized
	}
	if !user.IsActive {
		return model.AuthResponse{}, errors.Wrap(errs.ErrForbidden, "account is deactivated")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, string(user.Role), s.now())
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (model.User, error) {
	return s.repo.GetUser(ctx, userID)
}

// EnsureAdmin creates the bootstrap administrator unless the email is taken.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	email = normalizeEmail(email)
	return s.repo.Atomic(ctx, func(st libraryRepo.Store) error {
		_, err := st.GetUserByEmail(ctx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		s.log.Info("creating admin account", zap.String("email", email))
		return st.CreateUser(ctx, model.NewUser(name, email, hash, model.RoleAdmin, s.now()))
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
