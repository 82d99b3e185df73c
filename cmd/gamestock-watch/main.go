package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/gamestock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/market"
	"github.com/gamestock/gamestock-client/internal/portfolio"
	"github.com/gamestock/gamestock-client/internal/postgres"
	"github.com/gamestock/gamestock-client/internal/pricehistory"
	"github.com/gamestock/gamestock-client/internal/sample"
	"github.com/gamestock/gamestock-client/internal/server"
	"github.com/gamestock/gamestock-client/internal/session"
	"github.com/gamestock/gamestock-client/internal/watchlist"
)

const (
	_cfgFilePath = "./configs/gamestock.yaml"
)

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(_cfgFilePath)
	if err != nil {
		zapLogger.Fatalf("%s: can't load config", err)
	}

	pgConfig := postgres.NewConfigFromEnv().Setup()
	zapLogger.Debugf("trying to connect to db with: %s", pgConfig)
	db, err := postgres.NewDB(pgConfig)
	if err != nil {
		// History and the followed list fall back to memory only.
		zapLogger.Warnf("%s: can't connect to db, state won't survive restarts", err)
		db = nil
	}

	history := pricehistory.NewStore(db, clock.New(), zapLogger)
	history.Init(ctx)

	followed := watchlist.NewStore(db, cfg.Market.FollowedSeed, zapLogger)
	followed.Init(ctx)

	client, err := gamestock.NewClient(cfg.Client, zapLogger)
	if err != nil {
		zapLogger.Fatalf("%s: can't create gamestock client", err)
	}

	sessionService := session.NewService(client, config.NewCredentialsFromEnv(), zapLogger)
	if err := sessionService.AutoLogin(ctx); err != nil {
		zapLogger.Warnf("%s: auto-login failed, trading endpoints unavailable", err)
	}

	marketService := market.NewService(client, history, followed, cfg.Market, sample.Games(), zapLogger)
	portfolioService := portfolio.NewService(
		client, history, sample.Portfolio(), sample.Transactions(), cfg.Market.NoSampleFallback, zapLogger,
	)

	marketService.Load(ctx)
	portfolioService.Load(ctx)

	go marketService.Run(ctx)

	handler := server.NewHandler(marketService, portfolioService, sessionService, zapLogger)
	httpServer := server.NewHTTPServer(ctx, cfg.Server, handler.Router())

	zapLogger.Infof("listening on :%s", cfg.Server.Port)
	if err := httpServer.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Errorf("%s: http server stopped", err)
	}

	zapLogger.Infof("start graceful shutdown")
}
