package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/guess-the-flag-bot/internal/config"
	"github.com/aliskhannn/guess-the-flag-bot/internal/delivery/httpserver"
	"github.com/aliskhannn/guess-the-flag-bot/internal/delivery/telegram"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/game"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/guess-the-flag-bot/internal/logger"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
	"github.com/aliskhannn/guess-the-flag-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.TelegramDebug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.BotCommands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	countryRepo, err := repository.NewCountryRepository(cfg.CatalogPath)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	sessions := storage.NewSessionStorage(clock)

	var (
		recorder     service.ResultRecorder = service.NopRecorder{}
		statsService                        = service.NewStatsService(nil)
		userService                         = service.NewUserService(nil)
		checks       []httpserver.HealthCheck
	)

	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err = postgres.Migrate(ctx, pool, lg); err != nil {
			return err
		}

		recorder = service.NewResultService(
			postgres.NewTransactor(pool),
			func(db postgres.DBTX) service.UserRepository { return pgrepo.NewUserRepository(db) },
			func(db postgres.DBTX) service.ResultRepository { return pgrepo.NewResultRepository(db) },
		)
		statsService = service.NewStatsService(pgrepo.NewResultRepository(pool))
		userService = service.NewUserService(pgrepo.NewUserRepository(pool))
		checks = append(checks, poolCheck(pool))

		lg.Info("results log enabled")
	} else {
		lg.Info("results log disabled, DATABASE_URL is not set")
	}

	gameService := service.NewGameService(
		countryRepo.GetAll(),
		sessions,
		recorder,
		rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		clock,
		lg,
		game.Options{RedrawEachRound: cfg.Game.RedrawEachRound},
	)

	janitor := service.NewJanitor(sessions, cfg.Game.SessionTTL, cfg.Game.JanitorSchedule, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		gameService,
		statsService,
		userService,
		telegram.Options{DescribeFlags: cfg.UI.DescribeFlags},
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return janitor.Start(ctx)
	})

	if cfg.HTTP.Addr != "" {
		srv := httpserver.NewServer(cfg.HTTP.Addr, lg, checks...)
		g.Go(func() error {
			return srv.Run(ctx)
		})
	}

	g.Go(func() error {
		err := handler.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func poolCheck(pool *pgxpool.Pool) httpserver.HealthCheck {
	return httpserver.HealthCheck{
		Name:  "postgres",
		Check: pool.Ping,
	}
}
