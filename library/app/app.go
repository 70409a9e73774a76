package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/elibrary-service/library/config"
	"github.com/Astemirdum/elibrary-service/library/internal/eventlog"
	"github.com/Astemirdum/elibrary-service/library/internal/handler"
	"github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/library/internal/server"
	"github.com/Astemirdum/elibrary-service/library/internal/service"
	"github.com/Astemirdum/elibrary-service/library/migrations"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	"github.com/Astemirdum/elibrary-service/pkg/kafka"
	"github.com/Astemirdum/elibrary-service/pkg/logger"
	"github.com/Astemirdum/elibrary-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")

	repo, closeRepo := newRepository(cfg, log)
	events := newEvents(cfg.Kafka, log)

	tokens := auth.NewTokens(cfg.Auth.JWTKey, cfg.Auth.TokenTTL)
	svc := service.NewService(repo, log,
		service.WithEvents(events),
		service.WithTokens(tokens),
	)
	if err := svc.EnsureAdmin(context.Background(),
		cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("ensure admin", zap.Error(err))
	}

	h := handler.New(svc, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("storage", cfg.Storage))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := events.Close(); err != nil {
		log.Error("events close", zap.Error(err))
	}
	closeRepo()
	log.Info("Graceful shutdown finished")
}

func newRepository(cfg *config.Config, log *zap.Logger) (repository.Repository, func()) {
	if cfg.Storage == config.StorageMemory {
		return repository.NewMemoryRepository(log), func() {}
	}
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	return repo, func() {
		if err := db.Close(); err != nil {
			log.Error("db close", zap.Error(err))
		}
	}
}

func newEvents(cfg kafka.Config, log *zap.Logger) eventlog.Publisher {
	if !cfg.Enable {
		return eventlog.Nop()
	}
	producer, err := kafka.NewAsyncProducer(cfg)
	if err != nil {
		log.Fatal("kafka.NewAsyncProducer", zap.Error(err))
	}
	return eventlog.New(producer, cfg.Topic, log)
}
