package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/exotended-backend/internal/config"
	"github.com/rocketscienceinc/exotended-backend/internal/repository"
	"github.com/rocketscienceinc/exotended-backend/internal/repository/storage"
	"github.com/rocketscienceinc/exotended-backend/internal/service"
	"github.com/rocketscienceinc/exotended-backend/internal/usecase"
	"github.com/rocketscienceinc/exotended-backend/transport/console"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)

// RunApp - runs the application until the console input ends or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	sessionRepo, closeStorage, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	botService := service.NewBotService(conf.Bot.Depth)
	gameManager := usecase.NewGameManager(logger, sessionRepo, botService, conf.Bot.ID)

	channelID := conf.Console.Channel
	if channelID == "" {
		channelID = uuid.NewString()
	}

	shell := console.New(logger, gameManager, channelID)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer cancel()

		log.Info("Starting console", "channel", channelID, "storage", conf.Storage)
		if shellErr := shell.Run(groupCtx, in, out); shellErr != nil {
			return fmt.Errorf("console error: %w", shellErr)
		}

		return nil
	})

	group.Go(func() error {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-groupCtx.Done():
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application stopped")

	return nil
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage {
	case "", config.StorageMemory:
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStorage, conf.Storage)
	}
}
