// Command gamestock is a terminal client for the GameStock exchange:
// browse the market, inspect the portfolio and place orders.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/gamestock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/postgres"
	"github.com/gamestock/gamestock-client/internal/session"
)

const _cfgFilePath = "./configs/gamestock.yaml"

// app carries what every command needs once the flags are parsed.
type app struct {
	cfg     config.Config
	client  *gamestock.Client
	session *session.Service
	logger  logger.Logger
}

func newApp(level logger.LogLevel) (*app, func(), error) {
	zapLogger, loggerSync, err := logger.NewZapLogger(level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: can't init logger", err)
	}

	if err := godotenv.Load(); err != nil {
		zapLogger.Debugf("can't detect .env file")
	}

	cfg, err := config.LoadConfig(_cfgFilePath)
	if err != nil {
		loggerSync()
		return nil, nil, fmt.Errorf("%w: can't load config", err)
	}

	client, err := gamestock.NewClient(cfg.Client, zapLogger)
	if err != nil {
		loggerSync()
		return nil, nil, fmt.Errorf("%w: can't create gamestock client", err)
	}

	return &app{
		cfg:     cfg,
		client:  client,
		session: session.NewService(client, config.NewCredentialsFromEnv(), zapLogger),
		logger:  zapLogger,
	}, loggerSync, nil
}

// openDB connects to the local state database. A nil return means the
// command runs without persisted history or a followed list.
func openDB(l logger.Logger) *sqlx.DB {
	pgConfig := postgres.NewConfigFromEnv().Setup()
	db, err := postgres.NewDB(pgConfig)
	if err != nil {
		l.Debugf("%s: can't connect to db, running without local state", err)
		return nil
	}
	return db
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

func main() {
	log.SetFlags(0)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&gamesCmd{}, "market")
	commander.Register(&followCmd{follow: true}, "market")
	commander.Register(&followCmd{follow: false}, "market")
	commander.Register(&historyCmd{}, "market")

	commander.Register(&registerCmd{}, "account")
	commander.Register(&portfolioCmd{}, "account")
	commander.Register(&transactionsCmd{}, "account")
	commander.Register(&tradeCmd{side: "buy"}, "trading")
	commander.Register(&tradeCmd{side: "sell"}, "trading")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(int(commander.Execute(ctx)))
}
