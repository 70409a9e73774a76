package service

import (
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/eventlog"
	libraryRepo "github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	"github.com/Astemirdum/elibrary-service/pkg/kafka"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	repo   libraryRepo.Repository
	events eventlog.Publisher
	tokens auth.Tokens
	now    func() time.Time
}

type Option func(*Service)

func WithEvents(p eventlog.Publisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

func WithTokens(t auth.Tokens) Option {
	return func(s *Service) {
		s.tokens = t
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo libraryRepo.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:    log.Named("service"),
		repo:   repo,
		events: eventlog.Nop(),
		tokens: auth.NewTokens("secret", 24*time.Hour),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish is called after the unit of work has committed.
func (s *Service) publish(ev kafka.Event) {
	ev.Timestamp = s.now()
	if err := s.events.Publish(ev); err != nil {
		s.log.Debug("event dropped", zap.String("type", string(ev.EventType)), zap.Error(err))
	}
}
